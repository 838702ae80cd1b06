package proportion

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeScenarios(t *testing.T) {
	tests := []struct {
		name    string
		mode    Mode
		a, b, c float64
		want    float64
	}{
		{name: "direct workers", mode: Direct, a: 2, b: 10, c: 5, want: 25},
		{name: "inverse machines", mode: Inverse, a: 4, b: 6, c: 2, want: 12},
		{name: "direct fraction", mode: Direct, a: 3, b: 1, c: 2, want: 0.67},
		{name: "inverse negative", mode: Inverse, a: -3, b: 5, c: 4, want: -3.75},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Compute(tc.mode, tc.a, tc.b, tc.c)
			require.NoError(t, err)
			assert.Equal(t, tc.want, Round2(got))
		})
	}
}

func TestComputeMatchesFormulas(t *testing.T) {
	values := []float64{0.1, 0.5, 1, 1.5, 2, 3, 7, 10, 12.34, 99.99, 1000, -4, -0.25}

	for _, a := range values {
		for _, b := range values {
			for _, c := range values {
				direct, err := Compute(Direct, a, b, c)
				require.NoError(t, err)
				assert.Equal(t, Round2((c*b)/a), Round2(direct))

				inverse, err := Compute(Inverse, a, b, c)
				require.NoError(t, err)
				assert.Equal(t, Round2((a*b)/c), Round2(inverse))
			}
		}
	}
}

func TestComputeRejectsInvalidOperands(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c float64
		field   string
		reason  string
	}{
		{name: "zero a", a: 0, b: 1, c: 1, field: "a", reason: ReasonZero},
		{name: "zero b", a: 1, b: 0, c: 1, field: "b", reason: ReasonZero},
		{name: "zero c", a: 1, b: 1, c: 0, field: "c", reason: ReasonZero},
		{name: "nan", a: math.NaN(), b: 1, c: 1, field: "a", reason: ReasonNotFinite},
		{name: "inf", a: 1, b: math.Inf(1), c: 1, field: "b", reason: ReasonNotFinite},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for _, mode := range Modes {
				_, err := Compute(mode, tc.a, tc.b, tc.c)
				require.ErrorIs(t, err, ErrValidation)

				var verr *ValidationError
				require.True(t, errors.As(err, &verr))
				assert.Equal(t, tc.field, verr.Field)
				assert.Equal(t, tc.reason, verr.Reason)
			}
		})
	}
}

func TestComputeRejectsOverflowingResult(t *testing.T) {
	tests := []struct {
		name    string
		mode    Mode
		a, b, c float64
	}{
		{name: "direct product", mode: Direct, a: 1, b: 1e300, c: 1e300},
		{name: "direct quotient", mode: Direct, a: 1e-300, b: 1e10, c: 1e10},
		{name: "inverse product", mode: Inverse, a: 1e300, b: 1e300, c: 1},
		{name: "inverse negative", mode: Inverse, a: -1e300, b: 1e300, c: 1},
		{name: "inverse quotient", mode: Inverse, a: 1e200, b: 1e200, c: 1e-10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Compute(tc.mode, tc.a, tc.b, tc.c)
			require.ErrorIs(t, err, ErrValidation)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "x", verr.Field)
			assert.Equal(t, ReasonNotFinite, verr.Reason)
		})
	}
}

func TestComputeKeepsLargeFiniteResult(t *testing.T) {
	x, err := Compute(Direct, 1, 1e150, 1e150)
	require.NoError(t, err)
	assert.False(t, math.IsInf(x, 0))
}

func TestComputeUnknownMode(t *testing.T) {
	_, err := Compute(Mode(7), 1, 2, 3)
	require.ErrorIs(t, err, ErrUnknownMode)
}

func TestParseOperands(t *testing.T) {
	a, b, c, err := ParseOperands(" 2 ", "10", "5.5")
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 10, 5.5}, []float64{a, b, c})
}

func TestParseOperandsRejects(t *testing.T) {
	tests := []struct {
		name             string
		rawA, rawB, rawC string
		field, reason    string
	}{
		{name: "missing", rawA: "", rawB: "1", rawC: "1", field: "a", reason: ReasonMissing},
		{name: "blank", rawA: "1", rawB: "   ", rawC: "1", field: "b", reason: ReasonMissing},
		{name: "text", rawA: "1", rawB: "1", rawC: "abc", field: "c", reason: ReasonNotNumber},
		{name: "zero", rawA: "0", rawB: "1", rawC: "1", field: "a", reason: ReasonZero},
		{name: "negative zero", rawA: "1", rawB: "-0", rawC: "1", field: "b", reason: ReasonZero},
		{name: "overflow", rawA: "1e400", rawB: "1", rawC: "1", field: "a", reason: ReasonNotFinite},
		{name: "infinity", rawA: "1", rawB: "1", rawC: "Infinity", field: "c", reason: ReasonNotFinite},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, _, err := ParseOperands(tc.rawA, tc.rawB, tc.rawC)
			require.ErrorIs(t, err, ErrValidation)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
			assert.Equal(t, tc.reason, verr.Reason)
		})
	}
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode(" Inverse ")
	require.NoError(t, err)
	assert.Equal(t, Inverse, m)

	m, err = ParseMode("direct")
	require.NoError(t, err)
	assert.Equal(t, Direct, m)

	_, err = ParseMode("sideways")
	require.ErrorIs(t, err, ErrUnknownMode)
}

func TestModeText(t *testing.T) {
	text, err := Inverse.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "inverse", string(text))

	var m Mode
	require.NoError(t, m.UnmarshalText([]byte("inverse")))
	assert.Equal(t, Inverse, m)

	_, err = Mode(9).MarshalText()
	require.ErrorIs(t, err, ErrUnknownMode)
}

func TestFormula(t *testing.T) {
	assert.Equal(t, "X = (C × B) ÷ A", Formula(Direct))
	assert.Equal(t, "X = (A × B) ÷ C", Formula(Inverse))
}
