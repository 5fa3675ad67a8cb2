package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextEmployeeIDSequence(t *testing.T) {
	cases := []struct {
		last int
		want string
	}{
		{0, "EMP1001"}, // empty table
		{1001, "EMP1002"},
		{1042, "EMP1043"},
		{9999, "EMP10000"}, // keeps counting past four digits
		{10000, "EMP10001"},
		{2, "EMP1001"}, // short manual ID cannot drag the sequence down
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, nextEmployeeID(tc.last))
	}
}
