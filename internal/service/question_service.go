package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"math_quiz_backend/internal/config"
	"math_quiz_backend/internal/model"
	"math_quiz_backend/internal/util"
	"math_quiz_backend/pkg/logger"
	"math_quiz_backend/pkg/monitoring"

	"go.uber.org/zap"
)

var requiredColumns = []string{"level", "topic", "question", "answer"}

// QuestionService 시트 로드·캐시·필터·추첨을 담당한다. 문제 집합은 로드
// 성공 시에만 통째로 교체되며, 실패하면 이전 집합을 그대로 유지한다.
// 캐시는 프로세스 전역이고 TTL 없이 관리자 무효화(버전 증가)로만 갱신된다.
type QuestionService struct {
	Cfg *config.Store

	mu        sync.RWMutex
	questions []model.Question
	byID      map[string]model.Question
	cachedURL string
	cachedVer uint64
	version   uint64
	loadedAt  time.Time
}

func NewQuestionService(cfg *config.Store) *QuestionService {
	return &QuestionService{Cfg: cfg, byID: make(map[string]model.Question)}
}

// Load 시트 CSV를 읽어 문제 집합을 교체한다. 같은 링크로 이미 로드했고
// 캐시가 무효화되지 않았다면 네트워크를 타지 않는다.
func (s *QuestionService) Load(ctx context.Context, sheetURL string) (int, error) {
	if strings.TrimSpace(sheetURL) == "" {
		sheetURL = s.Cfg.Snapshot().Quiz.SheetURL
	}
	if strings.TrimSpace(sheetURL) == "" {
		return 0, util.ErrSheetEmpty
	}

	s.mu.RLock()
	if s.cachedURL == sheetURL && s.cachedVer == s.version && len(s.questions) > 0 {
		n := len(s.questions)
		s.mu.RUnlock()
		return n, nil
	}
	version := s.version
	s.mu.RUnlock()

	questions, err := s.fetch(ctx, sheetURL)
	if err != nil {
		monitoring.SheetReloadCounter.WithLabelValues("error").Inc()
		logger.Log.Error("sheet load failed", zap.String("url", sheetURL), zap.Error(err))
		return 0, err
	}
	monitoring.SheetReloadCounter.WithLabelValues("ok").Inc()

	byID := make(map[string]model.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	s.mu.Lock()
	s.questions = questions
	s.byID = byID
	s.cachedURL = sheetURL
	s.cachedVer = version
	s.loadedAt = time.Now()
	s.mu.Unlock()

	logger.Log.Info("question sheet loaded",
		zap.String("url", sheetURL),
		zap.Int("count", len(questions)))
	return len(questions), nil
}

// Invalidate 캐시 버전을 올려 다음 Load가 강제로 재요청하게 한다.
func (s *QuestionService) Invalidate() {
	s.mu.Lock()
	s.version++
	s.mu.Unlock()
}

// Questions 현재 집합의 복사본
func (s *QuestionService) Questions() []model.Question {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Question, len(s.questions))
	copy(out, s.questions)
	return out
}

func (s *QuestionService) ByID(id string) (model.Question, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.byID[id]
	return q, ok
}

func (s *QuestionService) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.questions) > 0
}

// Filter 난이도 일치(전체는 통과) + 키워드 AND 매칭. 원본은 건드리지
// 않고 복사본을 돌려준다.
func (s *QuestionService) Filter(questions []model.Question, level model.Level, keyword string) []model.Question {
	tokens := strings.Fields(strings.ToLower(keyword))

	out := make([]model.Question, 0, len(questions))
	for _, q := range questions {
		if level != model.LevelAll && q.Level != level {
			continue
		}
		if len(tokens) > 0 {
			hay := strings.ToLower(q.Topic + " " + q.Question + " " + q.Answer)
			matched := true
			for _, tok := range tokens {
				if !strings.Contains(hay, tok) {
					matched = false
					break
				}
			}
			if !matched {
				continue
			}
		}
		out = append(out, q)
	}
	return out
}

// PickNext 후보에서 균등 랜덤으로 다음 문제를 뽑는다. 매 호출이 새 추첨
// 이고 직전 문제가 다시 나올 수 있다. review면 이미 본 문제만, 아니면
// 본 문제를 제외한 나머지만 후보가 된다.
func (s *QuestionService) PickNext(filtered []model.Question, seen map[string]bool, review bool) (model.Question, error) {
	pool := make([]model.Question, 0, len(filtered))
	for _, q := range filtered {
		if review {
			if seen[q.ID] {
				pool = append(pool, q)
			}
		} else if !seen[q.ID] {
			pool = append(pool, q)
		}
	}
	if len(pool) == 0 {
		if review {
			return model.Question{}, util.ErrNothingToReview
		}
		return model.Question{}, util.ErrPoolExhausted
	}
	return pool[rand.Intn(len(pool))], nil
}

// ResolveImages image 셀 항목을 클라이언트가 쓸 참조로 바꾼다. 절대
// URL은 그대로, 파일명은 로컬 이미지 디렉터리에서 찾아 /images 경로로
// 바꾸고, 못 찾으면 조용히 건너뛴다.
func (s *QuestionService) ResolveImages(q model.Question) []string {
	if len(q.Images) == 0 {
		return nil
	}

	out := make([]string, 0, len(q.Images))
	for _, entry := range q.Images {
		if strings.HasPrefix(entry, "http://") || strings.HasPrefix(entry, "https://") {
			out = append(out, entry)
			continue
		}
		if name, ok := s.findLocalImage(entry); ok {
			out = append(out, "/images/"+name)
		}
	}
	return out
}

func (s *QuestionService) findLocalImage(name string) (string, bool) {
	dir := s.Cfg.Snapshot().Quiz.ImageDir
	if dir == "" {
		return "", false
	}
	// 경로 탈출 방지: 파일명만 허용
	name = filepath.Base(name)

	if filepath.Ext(name) != "" {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return name, true
		}
		return "", false
	}
	for _, ext := range util.AllowedImageExtensions {
		if _, err := os.Stat(filepath.Join(dir, name+ext)); err == nil {
			return name + ext, true
		}
	}
	return "", false
}

func (s *QuestionService) fetch(ctx context.Context, sheetURL string) ([]model.Question, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(s.Cfg.Snapshot().Quiz.FetchTimeoutSeconds)*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sheetURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sheet returned status %d", resp.StatusCode)
	}

	return parseSheet(resp.Body)
}

func parseSheet(r io.Reader) ([]model.Question, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, util.ErrMissingColumns
	}

	// 열 이름 소문자 통일
	col := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range requiredColumns {
		if _, ok := col[required]; !ok {
			return nil, util.ErrMissingColumns
		}
	}

	cell := func(row []string, name string) string {
		idx, ok := col[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	questions := make([]model.Question, 0, len(rows)-1)
	for _, row := range rows[1:] {
		q := model.Question{
			ID:       cell(row, "id"),
			Level:    model.Level(cell(row, "level")),
			Topic:    cell(row, "topic"),
			Question: cell(row, "question"),
			Answer:   cell(row, "answer"),
			Images:   splitImageCell(cell(row, "image")),
		}
		if q.Question == "" && q.Answer == "" {
			continue // 빈 행
		}
		if q.ID == "" {
			q.ID = model.MakeQuestionID(q)
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// splitImageCell 세미콜론/쉼표/줄바꿈 구분을 모두 허용
func splitImageCell(cell string) []string {
	if cell == "" {
		return nil
	}
	fields := strings.FieldsFunc(cell, func(r rune) bool {
		return r == ';' || r == ',' || r == '\n' || r == '\r'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
