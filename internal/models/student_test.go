package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGradeFor(t *testing.T) {
	cases := []struct {
		marks int
		want  Grade
	}{
		{100, GradeAPlus},
		{90, GradeAPlus},
		{89, GradeA},
		{75, GradeA},
		{74, GradeB},
		{60, GradeB},
		{59, GradeC},
		{40, GradeC},
		{0, GradeC},
		{-5, GradeC},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, GradeFor(tc.marks), "marks=%d", tc.marks)
	}
}

func TestStudentGradeDerivedFromMarks(t *testing.T) {
	s := Student{Marks: 95}
	assert.Equal(t, GradeAPlus, s.Grade())

	s.Marks = 35
	assert.Equal(t, GradeC, s.Grade())
}
