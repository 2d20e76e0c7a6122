// Copyright (c) 2026 Tome. All rights reserved.
// Author: safe.gergis@tome.dev

package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "simple title", input: "Summer Reading", expected: "summer-reading"},
		{name: "accented characters", input: "Café Littéraire", expected: "cafe-litteraire"},
		{name: "punctuation", input: "Best of 2026: Fantasy & Sci-Fi!", expected: "best-of-2026-fantasy-sci-fi"},
		{name: "leading and trailing noise", input: "  --Currently Reading--  ", expected: "currently-reading"},
		{name: "consecutive separators", input: "To   Be///Read", expected: "to-be-read"},
		{name: "empty string", input: "", expected: ""},
		{name: "only symbols", input: "!!!", expected: ""},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, From(testCase.input))
		})
	}
}
