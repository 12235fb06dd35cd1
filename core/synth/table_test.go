package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemberOf(t *testing.T) {
	for key, want := range map[string]string{
		"main.Invoice.Pay(int64)":                           "Pay(int64)",
		"example.com/shop.Item.Split(string,[]any)":         "Split(string,[]any)",
		"static example.com/shop.Item.Parse(time.Duration)": "static Parse(time.Duration)",
		"static main.Invoice.Parse(string,int64)":           "static Parse(string,int64)",
		"example.com/a.b/c.T.M()":                           "M()",
		"broken":                                            "broken",
	} {
		assert.Equal(t, want, memberOf(key), key)
	}
}
