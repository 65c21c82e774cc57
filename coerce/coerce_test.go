package coerce

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestCoerce_Bool(t *testing.T) {
	tests := []struct {
		name    string
		raw     any
		want    bool
		wantErr bool
	}{
		{name: "TrueWord", raw: "true", want: true},
		{name: "YesWord", raw: "yes", want: true},
		{name: "One", raw: "1", want: true},
		{name: "FalseWord", raw: "false", want: false},
		{name: "NoWord", raw: "no", want: false},
		{name: "Zero", raw: "0", want: false},
		{name: "MixedCase", raw: "TrUe", want: true},
		{name: "SurroundingSpace", raw: " yes ", want: true},
		{name: "AlreadyTyped", raw: true, want: true},
		{name: "Garbage", raw: "maybe", wantErr: true},
		{name: "WrongType", raw: 3.5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Coerce(tt.raw, Bool)
			if tt.wantErr {
				require.Error(t, err)
				var ce *CoercionError
				require.ErrorAs(t, err, &ce, "failures should carry a CoercionError")
				assert.Equal(t, tt.raw, ce.Raw, "error should retain the raw value")
				assert.Equal(t, Bool, ce.Target, "error should retain the target kind")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoerce_Numbers(t *testing.T) {
	tests := []struct {
		name    string
		raw     any
		kind    Kind
		want    any
		wantErr bool
	}{
		{name: "IntFromString", raw: "42", kind: Int, want: 42},
		{name: "NegativeInt", raw: "-7", kind: Int, want: -7},
		{name: "IntAlreadyTyped", raw: 42, kind: Int, want: 42},
		{name: "IntFromJSONNumber", raw: float64(12), kind: Int, want: 12},
		{name: "IntFromFractional", raw: 12.5, kind: Int, wantErr: true},
		{name: "IntFromGarbage", raw: "12x", kind: Int, wantErr: true},
		{name: "FloatFromString", raw: "3.25", kind: Float, want: 3.25},
		{name: "FloatFromInt", raw: 3, kind: Float, want: 3.0},
		{name: "FloatAlreadyTyped", raw: 1.5, kind: Float, want: 1.5},
		{name: "FloatFromGarbage", raw: "pi", kind: Float, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Coerce(tt.raw, tt.kind)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoerce_Times(t *testing.T) {
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	moment := time.Date(2024, 3, 15, 13, 45, 30, 0, time.UTC)

	got, err := Coerce("2024-03-15", Date)
	require.NoError(t, err)
	assert.Equal(t, day, got)

	got, err = Coerce("2024-03-15 13:45:30", DateTime)
	require.NoError(t, err)
	assert.Equal(t, moment, got)

	// A serialized date is an acceptable datetime: midnight.
	got, err = Coerce("2024-03-15", DateTime)
	require.NoError(t, err)
	assert.Equal(t, day, got)

	_, err = Coerce("15/03/2024", Date)
	assert.Error(t, err, "only the canonical layout parses")

	got, err = Coerce("1m30s", Duration)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, got)

	_, err = Coerce("90 seconds", Duration)
	assert.Error(t, err)
}

func TestCoerce_Lists(t *testing.T) {
	got, err := Coerce("a, b ,c", StringList)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, got, "elements should be trimmed")

	got, err = Coerce("", StringList)
	require.NoError(t, err)
	assert.Empty(t, got, "empty raw is an empty list")

	got, err = Coerce("1,2,3", IntList)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, got)

	_, err = Coerce("1,two,3", IntList)
	assert.Error(t, err)

	got, err = Coerce([]any{"x", "y"}, StringList)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, got, "decoder []any form should convert")

	got, err = Coerce([]any{float64(1), 2}, IntList)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, got)
}

func TestCoerce_String_RendersTypedValues(t *testing.T) {
	got, err := Coerce(8080, String)
	require.NoError(t, err)
	assert.Equal(t, "8080", got)

	got, err = Coerce(true, String)
	require.NoError(t, err)
	assert.Equal(t, "true", got)
}

func TestSerialize_UnsupportedType(t *testing.T) {
	_, err := Serialize(struct{}{})
	assert.Error(t, err)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("Duration")
	require.NoError(t, err)
	assert.Equal(t, Duration, k)

	_, err = ParseKind("complex128")
	assert.Error(t, err)
}

// TestRoundTrip_Property checks the inverse law Coerce(Serialize(v), k) == v
// for randomly generated values of every kind.
func TestRoundTrip_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var value any
		kind := rapid.SampledFrom([]Kind{Bool, Int, Float, Date, DateTime, Duration, StringList, IntList, String}).Draw(t, "kind")

		listElem := rapid.StringMatching(`[a-z][a-z0-9_-]{0,11}`)
		switch kind {
		case Bool:
			value = rapid.Bool().Draw(t, "bool")
		case Int:
			value = rapid.Int().Draw(t, "int")
		case Float:
			value = rapid.Float64().Draw(t, "float")
		case Date:
			value = time.Date(
				rapid.IntRange(1970, 2100).Draw(t, "year"),
				time.Month(rapid.IntRange(1, 12).Draw(t, "month")),
				rapid.IntRange(1, 28).Draw(t, "day"),
				0, 0, 0, 0, time.UTC)
		case DateTime:
			value = time.Date(
				rapid.IntRange(1970, 2100).Draw(t, "year"),
				time.Month(rapid.IntRange(1, 12).Draw(t, "month")),
				rapid.IntRange(1, 28).Draw(t, "day"),
				rapid.IntRange(0, 23).Draw(t, "hour"),
				rapid.IntRange(0, 59).Draw(t, "minute"),
				rapid.IntRange(0, 59).Draw(t, "second"),
				0, time.UTC)
		case Duration:
			value = time.Duration(rapid.Int64Range(0, int64(240*time.Hour)).Draw(t, "duration"))
		case StringList:
			value = rapid.SliceOfN(listElem, 1, 6).Draw(t, "strings")
		case IntList:
			value = rapid.SliceOfN(rapid.Int(), 1, 6).Draw(t, "ints")
		case String:
			value = listElem.Draw(t, "string")
		}

		raw, err := Serialize(value)
		if err != nil {
			t.Fatalf("serialize %v: %v", value, err)
		}
		back, err := Coerce(raw, kind)
		if err != nil {
			t.Fatalf("coerce %q back to %s: %v", raw, kind, err)
		}
		if !assert.ObjectsAreEqual(value, back) {
			t.Fatalf("round trip changed value: %v -> %q -> %v", value, raw, back)
		}
	})
}

// TestIdempotent_Property checks that coercing an already-typed value is the
// identity.
func TestIdempotent_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		kind := rapid.SampledFrom([]Kind{Bool, Int, Float, Duration}).Draw(t, "kind")
		var value any
		switch kind {
		case Bool:
			value = rapid.Bool().Draw(t, "bool")
		case Int:
			value = rapid.Int().Draw(t, "int")
		case Float:
			value = rapid.Float64().Draw(t, "float")
		case Duration:
			value = time.Duration(rapid.Int64().Draw(t, "duration"))
		}

		once, err := Coerce(value, kind)
		if err != nil {
			t.Fatalf("first coercion: %v", err)
		}
		twice, err := Coerce(once, kind)
		if err != nil {
			t.Fatalf("second coercion: %v", err)
		}
		if once != twice {
			t.Fatalf("coercion not idempotent: %v != %v", once, twice)
		}
	})
}

func TestKindOf(t *testing.T) {
	k, ok := KindOf(90 * time.Second)
	require.True(t, ok)
	assert.Equal(t, Duration, k)

	k, ok = KindOf(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, Date, k)

	_, ok = KindOf(errors.New("nope"))
	assert.False(t, ok)
}
