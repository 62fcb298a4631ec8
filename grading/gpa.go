// Package grading computes derived academic figures from a user's
// embedded grade list. Computations here run inside serialization
// paths with no error channel to the caller, so they degrade to safe
// defaults instead of failing.
package grading

import (
	"fmt"

	"github.com/campusbase/academic-records-api/model"
)

// GradePoints is the fixed letter-grade to grade-point table.
// Unknown grades (including "N/A") count as 0.0 points but still
// consume the course's credits.
var GradePoints = map[string]float64{
	"A+": 4.0, "A": 4.0, "A-": 3.7,
	"B+": 3.3, "B": 3.0, "B-": 2.7,
	"C+": 2.3, "C": 2.0, "C-": 1.7,
	"D+": 1.3, "D": 1.0, "D-": 0.7,
	"F": 0.0, "N/A": 0.0,
}

// ZeroGPA is returned whenever no GPA can be computed.
const ZeroGPA = "0.00"

// GPA derives a grade point average from the given entries, looking
// up course credits in credits (courseID -> credit hours). Entries
// referencing unknown courses are skipped silently: the grade list is
// an informal reference and may contain dangling course IDs. The
// result is always a two-decimal string, "0.00" when the list is
// empty or no referenced course resolves.
func GPA(entries []model.GradeEntry, credits map[uint]int) string {
	if len(entries) == 0 {
		return ZeroGPA
	}

	var totalPoints float64
	var totalCredits int

	for _, entry := range entries {
		courseCredits, ok := credits[entry.CourseID]
		if !ok {
			continue // dangling course reference
		}
		points := GradePoints[entry.Grade] // unknown grade -> 0.0
		totalPoints += float64(courseCredits) * points
		totalCredits += courseCredits
	}

	if totalCredits <= 0 {
		return ZeroGPA
	}
	return fmt.Sprintf("%.2f", totalPoints/float64(totalCredits))
}

// EnrolledCount counts the users whose grade list references the
// given course at least once. Each user is counted at most once even
// when their list holds duplicate entries for the course.
//
// The cost is O(users x entries); acceptable at current data sizes.
// TODO: replace with an indexed enrollment counter if course listings
// show up in profiles.
func EnrolledCount(courseID uint, users []model.User) int {
	count := 0
	for i := range users {
		for _, entry := range users[i].GradeEntries() {
			if entry.CourseID == courseID {
				count++
				break
			}
		}
	}
	return count
}
