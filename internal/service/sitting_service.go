package service

import (
	"sync"
	"time"

	"math_quiz_backend/internal/model"
	"math_quiz_backend/internal/util"
	"math_quiz_backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// 다음/종료 동작 이름
const (
	ActionNext   = "next"
	ActionFinish = "finish"
)

// QuestionView 출제 화면에 내려가는 문제. 정답은 포함하지 않는다.
type QuestionView struct {
	ID       string      `json:"id"`
	Level    model.Level `json:"level"`
	Topic    string      `json:"topic"`
	Question string      `json:"question"`
	Images   []string    `json:"images,omitempty"`
}

// SittingView 잠금 아래에서 찍은 회차 스냅샷. 살아 있는 Sitting 포인터는
// 서비스 밖으로 내보내지 않는다. 밖에서 읽는 동안 다른 요청이 같은
// 회차를 채점하면 Log/Stage가 바뀌기 때문이다.
type SittingView struct {
	ID        string       `json:"id"`
	UserName  string       `json:"user_name"`
	Stage     model.Stage  `json:"stage"`
	Filter    model.Filter `json:"filter"`
	Review    bool         `json:"review"`
	Tally     model.Stats  `json:"tally"`
	StartedAt time.Time    `json:"started_at"`
}

// AnswerOutcome 채점 직후 응답. 다음 문제로 넘어가면 Next가 채워지고,
// 피드백/결과 화면으로 가면 정답이 공개된다.
type AnswerOutcome struct {
	Status        model.AnswerStatus `json:"status"`
	CorrectAnswer string             `json:"correct_answer,omitempty"`
	Stage         model.Stage        `json:"stage"`
	Next          *QuestionView      `json:"next,omitempty"`
	Tally         model.Stats        `json:"tally"`
}

// SittingService 회차(sitting) 상태 기계. 상태는 메모리에만 살고 회차
// 종료와 함께 버려지며, 채점 기록만 원장으로 내려간다. 회차 상태는 모두
// s.mu 아래에서만 읽고 쓴다.
type SittingService struct {
	Questions *QuestionService
	Grading   *GradingService
	Progress  *ProgressService

	mu       sync.Mutex
	sittings map[string]*model.Sitting
}

func NewSittingService(questions *QuestionService, grading *GradingService, progress *ProgressService) *SittingService {
	return &SittingService{
		Questions: questions,
		Grading:   grading,
		Progress:  progress,
		sittings:  make(map[string]*model.Sitting),
	}
}

// Start home→quiz. 필터 결과가 비어 있으면 회차를 만들지 않고 home에
// 머문다.
func (s *SittingService) Start(user string, level model.Level, keyword string) (SittingView, *QuestionView, error) {
	if level == "" {
		level = model.LevelAll
	}
	if level != model.LevelAll && !level.Valid() {
		return SittingView{}, nil, util.ErrNoQuestions
	}

	filtered := s.Questions.Filter(s.Questions.Questions(), level, keyword)
	first, err := s.Questions.PickNext(filtered, nil, false)
	if err != nil {
		return SittingView{}, nil, util.ErrNoQuestions
	}

	sitting := &model.Sitting{
		ID:         uuid.New().String(),
		UserName:   user,
		Stage:      model.StageQuiz,
		Filter:     model.Filter{Level: level, Keyword: keyword},
		Seen:       make(map[string]bool),
		CurrentQID: first.ID,
		StartedAt:  time.Now(),
	}

	s.mu.Lock()
	s.sittings[sitting.ID] = sitting
	snap := snapshotSitting(sitting)
	s.mu.Unlock()

	logger.Log.Info("sitting started",
		zap.String("sitting", sitting.ID),
		zap.String("user", user),
		zap.String("level", string(level)),
		zap.String("keyword", keyword))

	view := s.view(first)
	return snap, &view, nil
}

// Get 소유자 검증을 포함한 스냅샷 조회
func (s *SittingService) Get(id, user string) (SittingView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sitting, err := s.lookup(id, user)
	if err != nil {
		return SittingView{}, err
	}
	return snapshotSitting(sitting), nil
}

// CurrentQuestion 현재 문제를 돌려준다. 필터가 바뀌어 현재 문제가
// 후보에서 빠졌으면 캐시된 번호를 쓰지 않고 새로 뽑는다.
func (s *SittingService) CurrentQuestion(id, user string) (*QuestionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sitting, err := s.lookup(id, user)
	if err != nil {
		return nil, err
	}
	if sitting.Stage != model.StageQuiz {
		return nil, util.ErrBadTransition
	}

	filtered := s.Questions.Filter(s.Questions.Questions(), sitting.Filter.Level, sitting.Filter.Keyword)
	if q, ok := s.inPool(filtered, sitting.CurrentQID); ok {
		view := s.view(q)
		return &view, nil
	}

	next, err := s.Questions.PickNext(filtered, sitting.Seen, sitting.Review)
	if err != nil {
		return nil, err
	}
	sitting.CurrentQID = next.ID
	view := s.view(next)
	return &view, nil
}

// Answer 현재 문제를 채점하고 원장에 기록한 뒤 action에 따라 전이한다.
//   - next: 새 추첨, 소진 시 result
//   - finish: withFeedback이면 feedback 경유, 아니면 바로 result
func (s *SittingService) Answer(id, user, rawAnswer, action string, withFeedback bool) (*AnswerOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sitting, err := s.lookup(id, user)
	if err != nil {
		return nil, err
	}
	if sitting.Stage != model.StageQuiz {
		return nil, util.ErrBadTransition
	}

	current, ok := s.Questions.ByID(sitting.CurrentQID)
	if !ok {
		return nil, util.ErrUnknownQuestion
	}

	status := s.Grading.Grade(rawAnswer, current.Answer)
	rec, err := s.Progress.Record(sitting.UserName, current.ID, status, current.Level)
	if err != nil {
		// 원장에 쓸 수 없으면 채점 자체를 실패로 돌린다.
		return nil, err
	}
	sitting.Log = append(sitting.Log, rec)
	sitting.Seen[current.ID] = true

	outcome := &AnswerOutcome{Status: status}

	switch action {
	case ActionFinish:
		to := model.StageResult
		if withFeedback {
			to = model.StageFeedback
		}
		if err := s.transition(sitting, to); err != nil {
			return nil, err
		}
		outcome.CorrectAnswer = current.Answer
	default: // next
		filtered := s.Questions.Filter(s.Questions.Questions(), sitting.Filter.Level, sitting.Filter.Keyword)
		next, err := s.Questions.PickNext(filtered, sitting.Seen, sitting.Review)
		if err != nil {
			// 후보 소진: 재시도 대신 결과 화면으로
			if err := s.transition(sitting, model.StageResult); err != nil {
				return nil, err
			}
			outcome.CorrectAnswer = current.Answer
		} else {
			if err := s.transition(sitting, model.StageQuiz); err != nil {
				return nil, err
			}
			sitting.CurrentQID = next.ID
			view := s.view(next)
			outcome.Next = &view
		}
	}

	outcome.Stage = sitting.Stage
	outcome.Tally = sitting.Tally()
	return outcome, nil
}

// AcknowledgeFeedback feedback→result
func (s *SittingService) AcknowledgeFeedback(id, user string) (SittingView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sitting, err := s.lookup(id, user)
	if err != nil {
		return SittingView{}, err
	}
	if err := s.transition(sitting, model.StageResult); err != nil {
		return SittingView{}, err
	}
	return snapshotSitting(sitting), nil
}

// EnterReviewSelect quiz/result→review_select. 이번 회차에 채점된 문제가
// 없으면 들어가지 않는다.
func (s *SittingService) EnterReviewSelect(id, user string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sitting, err := s.lookup(id, user)
	if err != nil {
		return nil, err
	}
	if len(sitting.Seen) == 0 {
		return nil, util.ErrNothingToReview
	}
	if err := s.transition(sitting, model.StageReviewSelect); err != nil {
		return nil, err
	}
	return sitting.SeenIDs(), nil
}

// SelectReview 이미 본 문제 id를 지정해 복습 모드로 quiz에 들어간다.
// 잘못된 id면 review_select에 머문다.
func (s *SittingService) SelectReview(id, user, qid string) (*QuestionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sitting, err := s.lookup(id, user)
	if err != nil {
		return nil, err
	}
	if sitting.Stage != model.StageReviewSelect {
		return nil, util.ErrBadTransition
	}

	q, ok := s.Questions.ByID(qid)
	if !ok || !sitting.Seen[qid] {
		return nil, util.ErrUnknownQuestion
	}

	if err := s.transition(sitting, model.StageQuiz); err != nil {
		return nil, err
	}
	sitting.Review = true
	sitting.CurrentQID = q.ID
	view := s.view(q)
	return &view, nil
}

// GoHome 어느 화면에서든 홈으로. 순수 이동이므로 채점/기록이 없다.
func (s *SittingService) GoHome(id, user string) (SittingView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sitting, err := s.lookup(id, user)
	if err != nil {
		return SittingView{}, err
	}
	if err := s.transition(sitting, model.StageHome); err != nil {
		return SittingView{}, err
	}
	sitting.Review = false
	sitting.CurrentQID = ""
	return snapshotSitting(sitting), nil
}

// MarkAdminUnlocked 관리자 인증 성공 표시. 회차가 끝날 때까지 유지된다.
func (s *SittingService) MarkAdminUnlocked(id, user string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sitting, err := s.lookup(id, user)
	if err != nil {
		return err
	}
	sitting.AdminUnlocked = true
	return nil
}

// lookup 호출자가 s.mu를 잡은 상태여야 한다.
func (s *SittingService) lookup(id, user string) (*model.Sitting, error) {
	sitting, ok := s.sittings[id]
	if !ok || sitting.UserName != user {
		return nil, util.ErrSittingNotFound
	}
	return sitting, nil
}

func snapshotSitting(sitting *model.Sitting) SittingView {
	return SittingView{
		ID:        sitting.ID,
		UserName:  sitting.UserName,
		Stage:     sitting.Stage,
		Filter:    sitting.Filter,
		Review:    sitting.Review,
		Tally:     sitting.Tally(),
		StartedAt: sitting.StartedAt,
	}
}

func (s *SittingService) transition(sitting *model.Sitting, to model.Stage) error {
	if !sitting.Stage.CanTransition(to) {
		logger.Log.Warn("blocked stage transition",
			zap.String("sitting", sitting.ID),
			zap.String("from", string(sitting.Stage)),
			zap.String("to", string(to)))
		return util.ErrBadTransition
	}
	sitting.Stage = to
	return nil
}

func (s *SittingService) inPool(pool []model.Question, qid string) (model.Question, bool) {
	if qid == "" {
		return model.Question{}, false
	}
	for _, q := range pool {
		if q.ID == qid {
			return q, true
		}
	}
	return model.Question{}, false
}

func (s *SittingService) view(q model.Question) QuestionView {
	return QuestionView{
		ID:       q.ID,
		Level:    q.Level,
		Topic:    q.Topic,
		Question: q.Question,
		Images:   s.Questions.ResolveImages(q),
	}
}
