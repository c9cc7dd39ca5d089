package sor

import "testing"

func TestTimeToDistance(t *testing.T) {
	got := timeToDistance(1_000_000, 1.46850)
	want := 10207.438
	if got != want {
		t.Errorf("timeToDistance(1_000_000, 1.46850) = %v, want %v", got, want)
	}
}

func TestTimeToDistanceDefaultsGroupIndex(t *testing.T) {
	withDefault := timeToDistance(1_000_000, defaultGroupIndex)
	withZero := timeToDistance(1_000_000, 0)
	withNegative := timeToDistance(1_000_000, -5)

	if withZero != withDefault {
		t.Errorf("group_index=0 gave %v, want default %v", withZero, withDefault)
	}
	if withNegative != withDefault {
		t.Errorf("group_index<0 gave %v, want default %v", withNegative, withDefault)
	}
}

func TestTimeToDistanceMonotone(t *testing.T) {
	prev := -1.0
	for _, t100ps := range []uint32{0, 100, 1000, 10000, 1000000} {
		d := timeToDistance(t100ps, 1.5)
		if d <= prev {
			t.Errorf("timeToDistance not monotone increasing at %d: got %v after %v", t100ps, d, prev)
		}
		prev = d
	}
}

func TestDescribeEventType(t *testing.T) {
	cases := []struct {
		code string
		want string
	}{
		{"1F0000L", "reflective, end-of-fiber, launch-fiber"},
		{"0A", "non-reflective, added-by-user"},
		{"2O", "saturated reflective, found-by-OTDR"},
		{"1M0000T", "reflective, moved-by-user, tail-fiber"},
		{"1", "unknown"},
		{"", "unknown"},
		{"9Z", ""},
	}
	for _, c := range cases {
		got := describeEventType(c.code)
		if got != c.want {
			t.Errorf("describeEventType(%q) = %q, want %q", c.code, got, c.want)
		}
	}
}

func TestDescribeEventTypeDeterministic(t *testing.T) {
	code := "1F000000L"
	first := describeEventType(code)
	for i := 0; i < 5; i++ {
		if got := describeEventType(code); got != first {
			t.Errorf("describeEventType not deterministic: got %q, want %q", got, first)
		}
	}
}

func TestFiberTypeName(t *testing.T) {
	if got := fiberTypeName(652); got != "G.652 (standard SM)" {
		t.Errorf("fiberTypeName(652) = %q", got)
	}
	if got := fiberTypeName(999); got != "999" {
		t.Errorf("fiberTypeName(999) = %q, want raw code passthrough", got)
	}
}

func TestBuildConditionName(t *testing.T) {
	if got := buildConditionName("BC"); got != "as-built" {
		t.Errorf("buildConditionName(BC) = %q", got)
	}
	if got := buildConditionName("ZZ"); got != "ZZ" {
		t.Errorf("buildConditionName(ZZ) = %q, want raw code passthrough", got)
	}
}

func TestTraceTypeName(t *testing.T) {
	if got := traceTypeName("ST"); got != "standard" {
		t.Errorf("traceTypeName(ST) = %q", got)
	}
	if got := traceTypeName("ZZ"); got != "ZZ" {
		t.Errorf("traceTypeName(ZZ) = %q, want raw code passthrough", got)
	}
}
