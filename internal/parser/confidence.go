package parser

// Confidence score per cara resolusi
const (
	ConfidenceProvince      = 95
	ConfidenceRegencyStrong = 95
	ConfidenceRegencyWeak   = 85
	ConfidenceDistrict      = 85
	ConfidenceVillage       = 85
	ConfidenceBlockNumber   = 90
	ConfidenceStreet        = 80
	ConfidencePostalLiteral = 100
)

// Grade tingkat kepercayaan untuk tampilan
type Grade string

const (
	GradeUnresolved Grade = "unresolved"
	GradeLow        Grade = "low"
	GradeMedium     Grade = "medium"
	GradeHigh       Grade = "high"
)

// GradeOf mengelompokkan score 0-100
func GradeOf(score int) Grade {
	switch {
	case score <= 0:
		return GradeUnresolved
	case score >= 90:
		return GradeHigh
	case score >= 70:
		return GradeMedium
	default:
		return GradeLow
	}
}

// Color warna indikator untuk grade
func (g Grade) Color() string {
	switch g {
	case GradeHigh:
		return "green"
	case GradeMedium:
		return "yellow"
	case GradeLow:
		return "red"
	default:
		return "grey"
	}
}
