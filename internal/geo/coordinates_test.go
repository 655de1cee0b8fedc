package geo

import "testing"

func TestEncodeDecode(t *testing.T) {
	c := Coordinates{40.7127281, -74.0060152}
	if got := c.Encode(); got != "[40.7127281,-74.0060152]" {
		t.Fatalf("Encode = %q", got)
	}
	back, err := Decode(c.Encode())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if back != c {
		t.Fatalf("Decode = %v, want %v", back, c)
	}
}

func TestDecodeRejectsMalformed(t *testing.T) {
	for _, value := range []string{"", "null", "[1]", "[1,2,3]", `{"lat":1}`, `["a","b"]`} {
		if _, err := Decode(value); err == nil {
			t.Errorf("Decode(%q) expected error", value)
		}
	}
}

func TestParseStrings(t *testing.T) {
	c, err := Parse("48.8588897", " 2.3200410 ")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.Lat() != 48.8588897 || c.Lon() != 2.320041 {
		t.Fatalf("unexpected coordinates %v", c)
	}
	if _, err := Parse("north", "2"); err == nil {
		t.Fatal("expected latitude error")
	}
	if _, err := Parse("1", ""); err == nil {
		t.Fatal("expected longitude error")
	}
	if _, err := Parse("NaN", "1"); err == nil {
		t.Fatal("expected NaN to be rejected")
	}
}

func TestParseTrustsUpstreamRange(t *testing.T) {
	coords, err := Parse("91.5", "-200")
	if err != nil {
		t.Fatalf("Parse rejected out-of-range upstream values: %v", err)
	}
	if coords.Lat() != 91.5 || coords.Lon() != -200 {
		t.Fatalf("unexpected coordinates %v", coords)
	}
	if _, err := Decode("[95,190]"); err != nil {
		t.Fatalf("Decode rejected out-of-range values: %v", err)
	}
}

func TestCheckRange(t *testing.T) {
	for _, pair := range [][2]string{{"90.5", "0"}, {"-91", "0"}, {"0", "180.1"}, {"0", "-200"}} {
		coords, err := Parse(pair[0], pair[1])
		if err != nil {
			t.Fatalf("Parse(%q, %q): %v", pair[0], pair[1], err)
		}
		if coords.CheckRange() == nil {
			t.Errorf("CheckRange(%v) expected range error", coords)
		}
	}
	if err := (Coordinates{90, -180}).CheckRange(); err != nil {
		t.Fatalf("boundary values rejected: %v", err)
	}
}
