package internaldefs

import (
	authkit "github.com/lingostack/authkit"
)

// CounterDef defines a public type used by authkit APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   authkit.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the credential engine.
var CounterDefs = []CounterDef{
	{ID: authkit.MetricLoginSuccess, Name: "authkit_login_success_total", Help: "Successful login attempts."},
	{ID: authkit.MetricLoginFailure, Name: "authkit_login_failure_total", Help: "Failed login attempts."},
	{ID: authkit.MetricReissueSuccess, Name: "authkit_reissue_success_total", Help: "Successful access token reissues."},
	{ID: authkit.MetricReissueFailure, Name: "authkit_reissue_failure_total", Help: "Failed access token reissues."},
	{ID: authkit.MetricRegisterSuccess, Name: "authkit_register_success_total", Help: "Successful registrations."},
	{ID: authkit.MetricRegisterDuplicate, Name: "authkit_register_duplicate_total", Help: "Registrations rejected as duplicate."},
	{ID: authkit.MetricRegisterFailure, Name: "authkit_register_failure_total", Help: "Registrations failed for other reasons."},
	{ID: authkit.MetricOTPSendSuccess, Name: "authkit_otp_send_success_total", Help: "Passcodes generated, stored, and dispatched."},
	{ID: authkit.MetricOTPSendFailure, Name: "authkit_otp_send_failure_total", Help: "Failed passcode sends."},
	{ID: authkit.MetricOTPVerifySuccess, Name: "authkit_otp_verify_success_total", Help: "Passcodes consumed and accounts verified."},
	{ID: authkit.MetricOTPVerifyFailure, Name: "authkit_otp_verify_failure_total", Help: "Failed passcode verifications."},
	{ID: authkit.MetricAuthorizeSuccess, Name: "authkit_authorize_success_total", Help: "Requests admitted by the authorization gate."},
	{ID: authkit.MetricAuthorizeFailure, Name: "authkit_authorize_failure_total", Help: "Requests rejected by the authorization gate."},
	{ID: authkit.MetricPasswordUpgrade, Name: "authkit_password_upgrade_total", Help: "Password digests re-hashed on login."},
}
