package errors

import (
	"strings"
	"testing"
)

func TestValidateOutputFormat(t *testing.T) {
	for _, f := range []string{"svg", "png", "dot"} {
		if err := ValidateOutputFormat(f); err != nil {
			t.Errorf("ValidateOutputFormat(%q) = %v", f, err)
		}
	}
	err := ValidateOutputFormat("pdf")
	if !Is(err, ErrCodeInvalidFormat) {
		t.Errorf("ValidateOutputFormat(pdf) = %v, want INVALID_FORMAT", err)
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "out/sig.svg", false},
		{"absolute", "/tmp/sig.svg", false},
		{"empty", "", true},
		{"too long", strings.Repeat("a", 5000), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateHeightAndRoot(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
	}{
		{"height -1", ValidateHeight(-1), ""},
		{"height 0", ValidateHeight(0), ""},
		{"height -2", ValidateHeight(-2), ErrCodeInvalidHeight},
		{"root ok", ValidateRoot(2, 3), ""},
		{"root too big", ValidateRoot(3, 3), ErrCodeInvalidRoot},
		{"root negative", ValidateRoot(-1, 3), ErrCodeInvalidRoot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.code {
				t.Errorf("code = %q, want %q (%v)", got, tt.code, tt.err)
			}
		})
	}
}

func TestValidateSignatureString(t *testing.T) {
	if err := ValidateSignatureString("[C]"); err != nil {
		t.Errorf("valid signature rejected: %v", err)
	}
	for _, s := range []string{"", "   ", strings.Repeat("x", MaxSignatureLength+1)} {
		if !Is(ValidateSignatureString(s), ErrCodeInvalidSignature) {
			t.Errorf("ValidateSignatureString(len %d) should fail", len(s))
		}
	}
}
