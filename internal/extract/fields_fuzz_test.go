package extract

import (
	"strconv"
	"strings"
	"testing"
)

func FuzzParseFields(f *testing.F) {
	f.Add("08. Service1: 325 DL\n09. D1: 16")
	f.Add("no colon here")
	f.Add("abc: def\n: empty label")
	f.Add("1.2.3: dotted\n99999999999999999999: overflow")

	f.Fuzz(func(t *testing.T, input string) {
		fields := ParseFields(input)

		for _, index := range fields.Indices() {
			if index <= 0 {
				t.Fatalf("non-positive index %d", index)
			}
			value, _ := fields.Get(index)
			if value == "" || value != strings.TrimSpace(value) {
				t.Fatalf("index %d has untrimmed or blank value %q", index, value)
			}
			if !strings.Contains(input, strconv.Itoa(index)) {
				t.Fatalf("index %d does not appear in input", index)
			}
		}
	})
}
