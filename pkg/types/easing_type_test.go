package types

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParseEasingType(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    EasingType
		wantErr bool
	}{
		{"标准名称", "QuarticOut", EasingQuarticOut, false},
		{"小写", "bounceout", EasingBounceOut, false},
		{"带空格", "  Linear ", EasingLinear, false},
		{"瞬间", "Instant", EasingInstant, false},
		{"未知名称", "Elastic", EasingUnknown, true},
		{"空字符串", "", EasingUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEasingType(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseEasingType(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseEasingType(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestEasingTypeString(t *testing.T) {
	if EasingCubicInOut.String() != "CubicInOut" {
		t.Errorf("got %s, want CubicInOut", EasingCubicInOut.String())
	}
	if EasingType(99).String() != "Unknown" {
		t.Errorf("out of range value should print Unknown, got %s", EasingType(99).String())
	}
}

func TestEasingTypeYAML(t *testing.T) {
	type doc struct {
		Curve EasingType `yaml:"curve"`
	}

	var d doc
	if err := yaml.Unmarshal([]byte("curve: QuadraticInOut\n"), &d); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if d.Curve != EasingQuadraticInOut {
		t.Errorf("Curve = %v, want QuadraticInOut", d.Curve)
	}

	out, err := yaml.Marshal(doc{Curve: EasingBounceOut})
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if string(out) != "curve: BounceOut\n" {
		t.Errorf("Marshal = %q", string(out))
	}

	if err := yaml.Unmarshal([]byte("curve: Wobble\n"), &d); err == nil {
		t.Error("expected error for unknown curve name")
	}
}
