package treatment

import "testing"

func TestValidateHeatLevel(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		want     float64
		wantCode string
	}{
		{name: "integer", raw: "42", want: 42},
		{name: "decimal", raw: "37.5", want: 37.5},
		{name: "lower bound", raw: "0", want: 0},
		{name: "upper bound", raw: "100", want: 100},
		{name: "padded input", raw: "  12.5  ", want: 12.5},
		{name: "empty", raw: "", wantCode: CodeNotNumeric},
		{name: "not a number", raw: "hot", wantCode: CodeNotNumeric},
		{name: "comma decimal", raw: "12,5", wantCode: CodeNotNumeric},
		{name: "nan", raw: "NaN", wantCode: CodeNotNumeric},
		{name: "nan lowercase", raw: "nan", wantCode: CodeNotNumeric},
		{name: "positive infinity", raw: "Inf", wantCode: CodeNotNumeric},
		{name: "negative infinity", raw: "-Inf", wantCode: CodeNotNumeric},
		{name: "negative", raw: "-1", wantCode: CodeOutOfRange},
		{name: "above range", raw: "100.1", wantCode: CodeOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateHeatLevel(tt.raw)

			if tt.wantCode != "" {
				ve, ok := AsValidation(err)
				if !ok {
					t.Fatalf("expected validation error, got %v", err)
				}
				if ve.Code != tt.wantCode {
					t.Fatalf("expected code %s, got %s", tt.wantCode, ve.Code)
				}
				if ve.Field != "heat_level" {
					t.Fatalf("expected field heat_level, got %s", ve.Field)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestValidatePainLevel_Optional(t *testing.T) {
	got, err := ValidatePainLevel("", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil pain level, got %v", *got)
	}
}

func TestValidatePainLevel_RequiredEmpty(t *testing.T) {
	_, err := ValidatePainLevel("", true)

	ve, ok := AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if ve.Code != CodeMissingField || ve.Field != "pain_level" {
		t.Fatalf("unexpected error: %+v", ve)
	}
}

func TestValidatePainLevel(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		want     int
		wantCode string
	}{
		{name: "lower bound", raw: "1", want: 1},
		{name: "upper bound", raw: "10", want: 10},
		{name: "mid", raw: "5", want: 5},
		{name: "zero", raw: "0", wantCode: CodeOutOfRange},
		{name: "above range", raw: "11", wantCode: CodeOutOfRange},
		{name: "decimal", raw: "5.5", wantCode: CodeNotNumeric},
		{name: "not a number", raw: "ouch", wantCode: CodeNotNumeric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidatePainLevel(tt.raw, true)

			if tt.wantCode != "" {
				ve, ok := AsValidation(err)
				if !ok {
					t.Fatalf("expected validation error, got %v", err)
				}
				if ve.Code != tt.wantCode {
					t.Fatalf("expected code %s, got %s", tt.wantCode, ve.Code)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got == nil || *got != tt.want {
				t.Fatalf("expected %d, got %v", tt.want, got)
			}
		})
	}
}
