package price

import (
	"encoding/json"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Cents
		wantErr bool
	}{
		{"$10.00", 1000, false},
		{"$30.00", 3000, false},
		{"10.00", 1000, false},
		{"$189.99", 18999, false},
		{" $5 ", 500, false},
		{"$", 0, true},
		{"", 0, true},
		{"$abc", 0, true},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("Parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestUnmarshalJSON(t *testing.T) {
	tests := []struct {
		in   string
		want Cents
	}{
		{`"$10.00"`, 1000},     // string with dollar sign
		{`"29.99"`, 2999},      // bare decimal string
		{`29.99`, 2999},        // float dollars
		{`1000`, 1000},         // integer cents (canonical persisted form)
		{`1.005e2`, 10050},     // scientific notation is dollars
	}
	for _, tt := range tests {
		var c Cents
		if err := json.Unmarshal([]byte(tt.in), &c); err != nil {
			t.Errorf("unmarshal %s: %v", tt.in, err)
			continue
		}
		if c != tt.want {
			t.Errorf("unmarshal %s = %d, want %d", tt.in, c, tt.want)
		}
	}

	var c Cents
	if err := json.Unmarshal([]byte(`"not a price"`), &c); err == nil {
		t.Error("expected error for non-numeric string")
	}
}

func TestString(t *testing.T) {
	if got := Cents(3000).String(); got != "$30.00" {
		t.Errorf("String() = %q, want $30.00", got)
	}
	if got := Cents(18999).String(); got != "$189.99" {
		t.Errorf("String() = %q, want $189.99", got)
	}
}
