package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// GenerateSerialNumber derives a certificate serial from the student/course
// pair plus clock entropy: the first 16 hex chars of
// sha256("student-course-nanos"), uppercased. Global uniqueness is enforced
// by the unique index on certificates.serial_number.
func GenerateSerialNumber(studentID, courseID uint) string {
	data := fmt.Sprintf("%d-%d-%d", studentID, courseID, time.Now().UnixNano())
	sum := sha256.Sum256([]byte(data))
	return strings.ToUpper(hex.EncodeToString(sum[:])[:16])
}
