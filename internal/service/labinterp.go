package service

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/nursing-tutor-mcp-server/internal/registry"
)

// Interpretation failure strings are part of the output contract and
// are returned verbatim to the learner.
const (
	interpUnknownTest  = "검사 정보를 찾을 수 없습니다."
	interpUnknownRange = "정상 범위를 확인할 수 없습니다."
)

// rangePattern extracts the low and high bounds of a textual normal
// range ("13.5-17.5 g/dL"). Ranges expressed only as a threshold
// ("<0.04 ng/mL") intentionally do not match.
var rangePattern = regexp.MustCompile(`(\d+\.?\d*)-(\d+\.?\d*)`)

// numberPattern pulls the leading numeric out of a critical value
// string ("<7.0 g/dL").
var numberPattern = regexp.MustCompile(`(\d+\.?\d*)`)

// LabInterpreter classifies measured lab values against the catalog's
// normal ranges and critical thresholds.
type LabInterpreter struct {
	logger    *logrus.Logger
	labValues *registry.LabValueRegistry
}

// NewLabInterpreter creates a new lab interpreter.
func NewLabInterpreter(logger *logrus.Logger, labValues *registry.LabValueRegistry) *LabInterpreter {
	return &LabInterpreter{logger: logger, labValues: labValues}
}

// Interpret classifies value against the test's normal range. The
// general adult range wins over gender-specific ranges; the gender
// range is consulted only when no general range exists and a gender
// was supplied.
func (i *LabInterpreter) Interpret(labID string, value float64, gender string) string {
	lab, ok := i.labValues.Get(labID)
	if !ok {
		return interpUnknownTest
	}

	rangeText := lab.NormalRange.AdultGeneral
	if rangeText == "" {
		switch gender {
		case "male":
			rangeText = lab.NormalRange.AdultMale
		case "female":
			rangeText = lab.NormalRange.AdultFemale
		}
	}

	match := rangePattern.FindStringSubmatch(rangeText)
	if match == nil {
		return interpUnknownRange
	}

	low, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return interpUnknownRange
	}
	high, err := strconv.ParseFloat(match[2], 64)
	if err != nil {
		return interpUnknownRange
	}

	switch {
	case value < low:
		return fmt.Sprintf("낮음 (정상: %s)", rangeText)
	case value > high:
		return fmt.Sprintf("높음 (정상: %s)", rangeText)
	default:
		return fmt.Sprintf("정상 (%s)", rangeText)
	}
}

// CriticalAlerts returns alert lines for values beyond the test's
// critical thresholds. Low and high thresholds are evaluated
// independently; an unknown test yields no alerts.
func (i *LabInterpreter) CriticalAlerts(labID string, value float64) []string {
	lab, ok := i.labValues.Get(labID)
	if !ok {
		return nil
	}

	var alerts []string

	if lab.CriticalValues.Low != "" {
		if low, ok := leadingNumber(lab.CriticalValues.Low); ok && value < low {
			alerts = append(alerts, fmt.Sprintf("⚠️ 위험: %s 수치가 매우 낮습니다 (%v %s)", lab.NameKorean, value, lab.Unit))
		}
	}
	if lab.CriticalValues.High != "" {
		if high, ok := leadingNumber(lab.CriticalValues.High); ok && value > high {
			alerts = append(alerts, fmt.Sprintf("⚠️ 위험: %s 수치가 매우 높습니다 (%v %s)", lab.NameKorean, value, lab.Unit))
		}
	}

	if len(alerts) > 0 {
		i.logger.WithFields(logrus.Fields{
			"lab_id": labID,
			"value":  value,
			"alerts": len(alerts),
		}).Warn("Critical lab value detected")
	}

	return alerts
}

func leadingNumber(s string) (float64, bool) {
	match := numberPattern.FindStringSubmatch(s)
	if match == nil {
		return 0, false
	}
	n, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
