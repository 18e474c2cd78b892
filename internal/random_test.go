package internal

import "testing"

func TestNewOTPLengthAndDigits(t *testing.T) {
	for digits := 4; digits <= 10; digits++ {
		code, err := NewOTP(digits)
		if err != nil {
			t.Fatalf("NewOTP(%d) failed: %v", digits, err)
		}
		if len(code) != digits {
			t.Fatalf("expected %d digits, got %q", digits, code)
		}
		for _, c := range code {
			if c < '0' || c > '9' {
				t.Fatalf("expected numeric passcode, got %q", code)
			}
		}
	}
}

func TestNewOTPRejectsInvalidLength(t *testing.T) {
	for _, digits := range []int{0, 3, 11, -1} {
		if _, err := NewOTP(digits); err == nil {
			t.Fatalf("expected rejection for %d digits", digits)
		}
	}
}

func TestNewOTPNotConstant(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 32; i++ {
		code, err := NewOTP(6)
		if err != nil {
			t.Fatalf("NewOTP failed: %v", err)
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Fatal("expected variation across generated passcodes")
	}
}
