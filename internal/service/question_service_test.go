package service

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"math_quiz_backend/internal/config"
	"math_quiz_backend/internal/model"
	"math_quiz_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQuestionService(t *testing.T, questions ...model.Question) *QuestionService {
	t.Helper()
	s := NewQuestionService(config.NewStore(&config.Config{
		Quiz: config.QuizConfig{FetchTimeoutSeconds: 5},
	}))
	byID := make(map[string]model.Question, len(questions))
	for i := range questions {
		if questions[i].ID == "" {
			questions[i].ID = model.MakeQuestionID(questions[i])
		}
		byID[questions[i].ID] = questions[i]
	}
	s.questions = questions
	s.byID = byID
	return s
}

func TestParseSheet(t *testing.T) {
	csvBody := strings.Join([]string{
		"Level,Topic,Question,Answer,Image,ID",
		"하,미분,$$y=x^2$$의 도함수는?,2x,,q-custom",
		"중,적분,넓이를 구하라,5,graph.png;https://example.com/a.png,",
		",,,,,", // 빈 행은 건너뛴다
	}, "\n")

	questions, err := parseSheet(strings.NewReader(csvBody))
	require.NoError(t, err)
	require.Len(t, questions, 2)

	assert.Equal(t, "q-custom", questions[0].ID)
	assert.Equal(t, model.LevelEasy, questions[0].Level)
	assert.Equal(t, "$$y=x^2$$의 도함수는?", questions[0].Question)

	// id가 비면 내용 해시로 합성
	assert.True(t, strings.HasPrefix(questions[1].ID, "q_"))
	assert.Len(t, questions[1].ID, 14)
	assert.Equal(t, []string{"graph.png", "https://example.com/a.png"}, questions[1].Images)
}

func TestParseSheetMissingColumns(t *testing.T) {
	_, err := parseSheet(strings.NewReader("level,topic\n하,미분"))
	assert.ErrorIs(t, err, util.ErrMissingColumns)
}

func TestLoadFromServerAndCache(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte("level,topic,question,answer\n하,수열,1+1=?,2\n"))
	}))
	defer srv.Close()

	s := newTestQuestionService(t)

	n, err := s.Load(t.Context(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, hits)

	// 같은 링크 재로드는 캐시를 쓴다
	_, err = s.Load(t.Context(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, 1, hits)

	// 무효화하면 강제로 다시 받는다
	s.Invalidate()
	_, err = s.Load(t.Context(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, 2, hits)
}

func TestLoadFailureKeepsPriorSet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := newTestQuestionService(t, model.Question{Level: model.LevelEasy, Topic: "수열", Question: "q", Answer: "a"})

	_, err := s.Load(t.Context(), srv.URL)
	assert.Error(t, err)
	assert.Len(t, s.Questions(), 1)
}

func TestLoadBlankURL(t *testing.T) {
	s := newTestQuestionService(t)
	_, err := s.Load(t.Context(), "  ")
	assert.ErrorIs(t, err, util.ErrSheetEmpty)
}

func TestFilterByLevel(t *testing.T) {
	q1 := model.Question{ID: "1", Level: model.LevelEasy, Topic: "수열", Question: "q1", Answer: "a1"}
	q2 := model.Question{ID: "2", Level: model.LevelEasy, Topic: "미분", Question: "q2", Answer: "a2"}
	q3 := model.Question{ID: "3", Level: model.LevelHard, Topic: "적분", Question: "q3", Answer: "a3"}
	s := newTestQuestionService(t, q1, q2, q3)

	all := s.Questions()

	// 순서와 무관하게 레벨 일치 전부
	easy := s.Filter(all, model.LevelEasy, "")
	assert.Len(t, easy, 2)

	// 다른 레벨이면 빈 결과
	assert.Empty(t, s.Filter([]model.Question{q1}, model.LevelHard, ""))

	// 센티널은 전부 통과
	assert.Len(t, s.Filter(all, model.LevelAll, ""), 3)

	// 원본 불변
	assert.Len(t, all, 3)
}

func TestFilterKeywordConjunctive(t *testing.T) {
	questions := []model.Question{
		{ID: "1", Level: model.LevelEasy, Topic: "미분", Question: "도함수를 구하라", Answer: "2x"},
		{ID: "2", Level: model.LevelEasy, Topic: "미분", Question: "기울기를 구하라", Answer: "3"},
		{ID: "3", Level: model.LevelEasy, Topic: "적분", Question: "도함수와 역연산", Answer: "x^2"},
	}
	s := newTestQuestionService(t, questions...)

	both := s.Filter(questions, model.LevelAll, "미분 도함수")
	withA := s.Filter(questions, model.LevelAll, "미분")
	withB := s.Filter(questions, model.LevelAll, "도함수")

	// AND 의미: 두 토큰 필터는 각 단일 토큰 필터의 교집합과 같다
	require.Len(t, both, 1)
	assert.Equal(t, "1", both[0].ID)
	ids := func(qs []model.Question) map[string]bool {
		m := make(map[string]bool)
		for _, q := range qs {
			m[q.ID] = true
		}
		return m
	}
	for _, q := range both {
		assert.True(t, ids(withA)[q.ID])
		assert.True(t, ids(withB)[q.ID])
	}

	// 빈 키워드는 전부 매칭
	assert.Len(t, s.Filter(questions, model.LevelAll, "   "), 3)

	// 대소문자 무시 부분 문자열
	qs := []model.Question{{ID: "4", Level: model.LevelEasy, Topic: "Geometry", Question: "find AREA", Answer: "12"}}
	assert.Len(t, s.Filter(qs, model.LevelAll, "area geo"), 1)
}

func TestPickNext(t *testing.T) {
	q1 := model.Question{ID: "1", Level: model.LevelEasy}
	q2 := model.Question{ID: "2", Level: model.LevelEasy}
	q3 := model.Question{ID: "3", Level: model.LevelEasy}
	s := newTestQuestionService(t)
	filtered := []model.Question{q1, q2, q3}
	seen := map[string]bool{"1": true, "3": true}

	// 일반 모드는 seen을 제외한다
	for i := 0; i < 20; i++ {
		q, err := s.PickNext(filtered, seen, false)
		require.NoError(t, err)
		assert.Equal(t, "2", q.ID)
	}

	// 복습 모드는 seen만 뽑는다
	for i := 0; i < 20; i++ {
		q, err := s.PickNext(filtered, seen, true)
		require.NoError(t, err)
		assert.True(t, seen[q.ID])
	}

	// 소진
	_, err := s.PickNext(filtered, map[string]bool{"1": true, "2": true, "3": true}, false)
	assert.ErrorIs(t, err, util.ErrPoolExhausted)

	// 복습할 것 없음
	_, err = s.PickNext(filtered, map[string]bool{}, true)
	assert.ErrorIs(t, err, util.ErrNothingToReview)
}

func TestResolveImages(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "graph.png"), []byte("png"), 0644))

	s := NewQuestionService(config.NewStore(&config.Config{Quiz: config.QuizConfig{ImageDir: dir}}))

	q := model.Question{Images: []string{
		"https://example.com/a.png", // URL은 그대로
		"graph.png",                 // 로컬 파일
		"graph",                     // 확장자 생략
		"missing.png",               // 없는 파일은 건너뜀
	}}

	resolved := s.ResolveImages(q)
	assert.Equal(t, []string{
		"https://example.com/a.png",
		"/images/graph.png",
		"/images/graph.png",
	}, resolved)
}
