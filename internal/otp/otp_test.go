package otp_test

import (
	"strconv"
	"testing"

	"github.com/dbfpn/account-service/internal/otp"
)

func TestGenerate_AlwaysSixDigits(t *testing.T) {
	for i := 0; i < 1000; i++ {
		code, err := otp.Generate()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("code %q has %d characters, want 6", code, len(code))
		}
		n, err := strconv.Atoi(code)
		if err != nil {
			t.Fatalf("code %q is not numeric: %v", code, err)
		}
		if n < 100000 || n > 999999 {
			t.Fatalf("code %d outside [100000, 999999]", n)
		}
	}
}

func TestGenerate_NotConstant(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := otp.Generate()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Errorf("50 generated codes were all identical")
	}
}
