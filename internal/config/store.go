package config

import "sync/atomic"

// Store 핫 리로드를 위한 설정 보관소. 감시 고루틴이 요청 처리와 동시에
// 설정을 바꾸므로 구조체를 덮어쓰지 않고 포인터를 원자 교체한다. 읽는
// 쪽은 호출 시점의 스냅샷을 받아 그 요청 동안만 쓰고, 스냅샷 자체는
// 수정하지 않는다.
type Store struct {
	current atomic.Pointer[Config]
}

func NewStore(cfg *Config) *Store {
	s := &Store{}
	s.current.Store(cfg)
	return s
}

func (s *Store) Snapshot() *Config {
	return s.current.Load()
}

func (s *Store) Swap(cfg *Config) {
	s.current.Store(cfg)
}
