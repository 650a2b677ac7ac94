package service

import (
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/RyoWakabayashi/pm-study/internal/models"
)

const RandomExamName = "ランダム出題"

var examIDPattern = regexp.MustCompile(`^(\d{4})r(\d{2})a_(.+)_(.+)$`)

var examTypeNames = map[string]string{
	"koudo": "高度情報技術者試験",
	"pm":    "プロジェクトマネージャー試験",
}

var sessionNames = map[string]string{
	"am1": "午前I",
	"am2": "午前II",
}

type CatalogS struct {
	examIDs   []string
	imagePath string
}

func NewCatalogService(examIDs []string, imagePath string) *CatalogS {
	ids := make([]string, len(examIDs))
	copy(ids, examIDs)
	return &CatalogS{
		examIDs:   ids,
		imagePath: imagePath,
	}
}

func (c *CatalogS) Exams() []models.ExamInfo {
	exams := make([]models.ExamInfo, 0, len(c.examIDs))
	for _, id := range c.examIDs {
		exams = append(exams, models.ExamInfo{ID: id, Name: ExamName(id)})
	}
	return exams
}

// ExamName turns "2024r06a_pm_am2" into "2024年度 PM区分 午前II".
func ExamName(examID string) string {
	if examID == models.RandomExamID {
		return RandomExamName
	}

	parts := examIDPattern.FindStringSubmatch(examID)
	if parts == nil {
		return examID
	}

	kind := "PM区分"
	if parts[3] == "koudo" {
		kind = "高度区分"
	}
	session := "午前II"
	if parts[4] == "am1" {
		session = "午前I"
	}

	return fmt.Sprintf("%s年度 %s %s", parts[1], kind, session)
}

// ResolveImagePath returns <base>/<exam>/qNN.png, or qNN_<option>.png when
// option is set.
func (c *CatalogS) ResolveImagePath(examID, questionNumber, option string) string {
	number := questionNumber
	if len(number) < 2 {
		number = strings.Repeat("0", 2-len(number)) + number
	}

	file := "q" + number + ".png"
	if option != "" {
		file = "q" + number + "_" + option + ".png"
	}
	return path.Join(c.imagePath, examID, file)
}

func GenerateCitation(examID, questionNumber string) string {
	parts := examIDPattern.FindStringSubmatch(examID)
	if parts == nil {
		return "出典：問" + questionNumber
	}

	year, _ := strconv.Atoi(parts[1])
	round := parts[2]

	examType, ok := examTypeNames[parts[3]]
	if !ok {
		examType = parts[3]
	}
	session, ok := sessionNames[parts[4]]
	if !ok {
		session = parts[4]
	}

	return fmt.Sprintf("出典：%s年度 %s回 %s %s 問%s", japaneseYear(year), round, examType, session, questionNumber)
}

func japaneseYear(year int) string {
	switch {
	case year >= 2019:
		return "令和" + strconv.Itoa(year-2018)
	case year >= 1989:
		return "平成" + strconv.Itoa(year-1988)
	case year >= 1926:
		return "昭和" + strconv.Itoa(year-1925)
	default:
		return strconv.Itoa(year)
	}
}

func jsonFile(jsonPath, examID string, withExplanations bool) string {
	name := examID + ".json"
	if withExplanations {
		name = examID + "_with_explanations.json"
	}
	return path.Join(strings.TrimSuffix(jsonPath, "/"), name)
}
