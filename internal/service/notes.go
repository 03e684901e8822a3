package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/nursing-tutor-mcp-server/internal/domain"
)

const (
	notePermWarning  = "원래 위치에 권한 문제로 임시 폴더에 저장되었습니다."
	noteFallbackDir  = "nursing-tutor-notes"
	notePreviewLimit = 200
)

// NoteComposer renders typed study notes and persists them into an
// Obsidian-compatible vault directory.
type NoteComposer struct {
	logger   *logrus.Logger
	vaultDir string
	now      func() time.Time
}

// NewNoteComposer creates a new note composer writing into vaultDir.
// An empty vaultDir defaults to NursingTutorVault under the user's
// Documents directory.
func NewNoteComposer(logger *logrus.Logger, vaultDir string) *NoteComposer {
	if vaultDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = os.TempDir()
		}
		vaultDir = filepath.Join(home, "Documents", "NursingTutorVault")
	}
	return &NoteComposer{logger: logger, vaultDir: vaultDir, now: time.Now}
}

// Compose renders the note for its type and writes it to the vault.
// When the vault is not writable due to permissions, the note is
// written to a fallback directory under the system temp dir and the
// returned note carries a warning instead of failing.
func (c *NoteComposer) Compose(ctx context.Context, noteType domain.NoteType, content string, tags []string) (*domain.Note, error) {
	if noteType != domain.NoteDaily && noteType != domain.NoteConcept && noteType != domain.NoteCaseStudy {
		return nil, domain.NewValidationError("note_type", "note type must be daily, concept or case_study", string(noteType))
	}
	if content == "" {
		return nil, domain.NewValidationError("content", "content is required", content)
	}

	createdAt := c.now()
	filename := fmt.Sprintf("%s-%s-%s.md", createdAt.Format("2006-01-02"), noteType, uuid.NewString()[:8])
	noteContent := c.renderNote(noteType, content, tags, createdAt)

	note := &domain.Note{
		Filename:  filename,
		Type:      noteType,
		Tags:      tags,
		Content:   noteContent,
		Preview:   notePreview(noteType, content),
		CreatedAt: createdAt,
	}

	notePath := filepath.Join(c.vaultDir, filename)
	if err := writeNoteFile(c.vaultDir, notePath, noteContent); err != nil {
		if !os.IsPermission(err) {
			return nil, fmt.Errorf("writing note: %w", err)
		}

		c.logger.WithFields(logrus.Fields{
			"vault": c.vaultDir,
			"error": err.Error(),
		}).Warn("Vault not writable, falling back to temp directory")

		fallback := filepath.Join(os.TempDir(), noteFallbackDir)
		notePath = filepath.Join(fallback, filename)
		if err := writeNoteFile(fallback, notePath, noteContent); err != nil {
			return nil, fmt.Errorf("writing note to fallback: %w", err)
		}
		note.Warning = notePermWarning
	}
	note.Path = notePath

	c.logger.WithFields(logrus.Fields{
		"filename": filename,
		"type":     noteType,
		"path":     notePath,
	}).Info("Vault note created")

	return note, nil
}

func writeNoteFile(dir, path, content string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

func (c *NoteComposer) renderNote(noteType domain.NoteType, content string, tags []string, createdAt time.Time) string {
	allTags := append(append([]string{}, tags...), "nursing", string(noteType))
	stamp := createdAt.Format(time.RFC3339)

	var b strings.Builder
	fmt.Fprintf(&b, "---\ntags: [%s]\ntype: %s\ncreated: %s\nmodified: %s\nstatus: active\npriority: medium\n---\n\n",
		strings.Join(allTags, ", "), noteType, stamp, stamp)
	fmt.Fprintf(&b, "# %s\n\n%s\n\n%s\n\n", noteTitle(noteType), content, noteTemplate(noteType))
	fmt.Fprintf(&b, "## 🔗 연관 개념\n%s\n\n", relatedConcepts(noteType))
	fmt.Fprintf(&b, "## 📝 학습 메모\n%s\n\n", learningChecklist(noteType))
	fmt.Fprintf(&b, "## 🎯 복습 계획\n%s\n\n", reviewPlan(noteType, createdAt))
	fmt.Fprintf(&b, "---\n*생성일: %s*\n*마지막 수정: %s*\n",
		createdAt.Format("2006. 1. 2. 15:04:05"), createdAt.Format("2006. 1. 2. 15:04:05"))
	return b.String()
}

func noteTitle(noteType domain.NoteType) string {
	switch noteType {
	case domain.NoteDaily:
		return "일일 학습 노트"
	case domain.NoteConcept:
		return "개념 정리 노트"
	case domain.NoteCaseStudy:
		return "사례 연구 노트"
	}
	return "학습 노트"
}

func noteTemplate(noteType domain.NoteType) string {
	switch noteType {
	case domain.NoteDaily:
		return `## 📅 오늘의 학습 목표
- [ ] 목표 1
- [ ] 목표 2
- [ ] 목표 3

## 📚 학습한 내용
(위 내용 참조)

## 🤔 어려웠던 점
-

## 💡 새로 알게 된 것
-

## 🔄 복습이 필요한 부분
- `
	case domain.NoteConcept:
		return `## 📖 개념 정의
(위 내용 참조)

## 🔍 세부 내용
### 주요 특징
-

### 임상 적용
-

### 주의사항
-

## 🧪 실습 포인트
-

## ❓ 추가 질문
- `
	case domain.NoteCaseStudy:
		return `## 📋 사례 요약
(위 내용 참조)

## 🔍 분석 과정
### 1. 문제 파악
-

### 2. 간호진단
-

### 3. 계획 수립
-

### 4. 중재 실행
-

### 5. 평가
-

## 📊 학습 성과
-

## 🎯 적용 계획
- `
	}
	return ""
}

func relatedConcepts(noteType domain.NoteType) string {
	var concepts []string
	switch noteType {
	case domain.NoteDaily:
		concepts = []string{"[[간호과정]]", "[[환자안전]]", "[[간호윤리]]"}
	case domain.NoteConcept:
		concepts = []string{"[[기본간호학]]", "[[성인간호학]]", "[[임상실습]]"}
	case domain.NoteCaseStudy:
		concepts = []string{"[[간호진단]]", "[[간호계획]]", "[[간호평가]]"}
	default:
		return "- [[간호학 기초]]"
	}
	lines := make([]string, len(concepts))
	for i, c := range concepts {
		lines[i] = "- " + c
	}
	return strings.Join(lines, "\n")
}

func learningChecklist(noteType domain.NoteType) string {
	var items []string
	switch noteType {
	case domain.NoteDaily:
		items = []string{
			"[ ] 오늘의 학습 목표 달성",
			"[ ] 핵심 개념 정리",
			"[ ] 실습 적용 방법 이해",
			"[ ] 복습 계획 수립",
		}
	case domain.NoteConcept:
		items = []string{
			"[ ] 개념 정의 완전 이해",
			"[ ] 임상 적용 사례 파악",
			"[ ] 관련 개념과의 연결성 파악",
			"[ ] 실습에서 활용 방법 계획",
		}
	case domain.NoteCaseStudy:
		items = []string{
			"[ ] 사례 분석 완료",
			"[ ] 간호진단 적절성 검토",
			"[ ] 간호계획 실현 가능성 검토",
			"[ ] 유사 사례 적용 방법 계획",
		}
	default:
		return "- [ ] 학습 내용 복습"
	}
	return strings.Join(items, "\n")
}

func reviewPlan(noteType domain.NoteType, createdAt time.Time) string {
	const dateLayout = "2006. 1. 2."
	tomorrow := createdAt.AddDate(0, 0, 1).Format(dateLayout)
	nextWeek := createdAt.AddDate(0, 0, 7).Format(dateLayout)
	nextMonth := createdAt.AddDate(0, 0, 30).Format(dateLayout)

	return fmt.Sprintf(`- **1일 후 (%s)**: 핵심 개념 재확인
- **1주 후 (%s)**: 실습 적용 및 응용
- **1개월 후 (%s)**: 종합 정리 및 심화 학습`, tomorrow, nextWeek, nextMonth)
}

func notePreview(noteType domain.NoteType, content string) string {
	var kind string
	switch noteType {
	case domain.NoteDaily:
		kind = "일일 학습"
	case domain.NoteConcept:
		kind = "개념 정리"
	default:
		kind = "사례 연구"
	}

	runes := []rune(content)
	if len(runes) > notePreviewLimit {
		return fmt.Sprintf("[%s] %s...", kind, string(runes[:notePreviewLimit]))
	}
	return fmt.Sprintf("[%s] %s", kind, content)
}
