package report

import "testing"

func TestClamp(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{-5, 0},
		{0, 0},
		{42.5, 42.5},
		{100, 100},
		{150, 100},
	}
	for _, tt := range tests {
		if got := Clamp(tt.in); got != tt.want {
			t.Errorf("Clamp(%v) = %v, want %v", tt.in, tt.want, got)
		}
	}
}

func TestConstructorKinds(t *testing.T) {
	tests := []struct {
		name    string
		section Section
		want    Kind
	}{
		{"table", Table("t", []string{"a"}, nil), KindTable},
		{"keyvalue", KeyValue("t", nil), KindKeyValue},
		{"text", Text("t", "body"), KindText},
		{"note", Note("t", "body"), KindNote},
		{"gauge", Gauge("t", []Metric{{Label: "x", Percent: 1}}, nil), KindGauge},
	}
	for _, tt := range tests {
		if tt.section.Kind != tt.want {
			t.Errorf("%s: kind = %v, want %v", tt.name, tt.section.Kind, tt.want)
		}
	}
}

func TestKindPredicates(t *testing.T) {
	n := Note("t", "body")
	if !n.IsNote() || n.IsTable() || n.IsKeyValue() || n.IsText() || n.IsGauge() {
		t.Error("note predicates wrong")
	}
	g := Gauge("t", nil, nil)
	if !g.IsGauge() || g.IsNote() {
		t.Error("gauge predicates wrong")
	}
}
