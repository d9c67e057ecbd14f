package filestore

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"sync"
)

// Table CSV 한 파일을 감싸는 저장 프리미티브. 원장은 Append만, 랭킹/계정
// 테이블은 전체 Rewrite만 사용한다. 프로세스 내 동시 접근은 테이블별
// 뮤텍스로 직렬화하고, 프로세스 간 경합은 행 단위 append / 마지막 저장
// 승리로 받아들인다.
type Table struct {
	path   string
	header []string
	mu     sync.Mutex
}

func NewTable(path string, header []string) *Table {
	return &Table{path: path, header: header}
}

func (t *Table) Path() string { return t.path }

// Append 한 행을 추가한다. 파일이 없으면 헤더부터 쓴다. 쓰기가 디스크에
// 내려간 뒤에야 반환한다.
func (t *Table) Append(row []string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(t.path), 0755); err != nil {
		return err
	}

	_, statErr := os.Stat(t.path)
	fresh := os.IsNotExist(statErr)

	f, err := os.OpenFile(t.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if fresh {
		if err := w.Write(t.header); err != nil {
			return err
		}
	}
	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Sync()
}

// ReadAll 헤더를 제외한 전체 행을 반환한다. 파일이 없으면 빈 결과,
// 파싱 실패는 에러로 돌려주고 판단은 호출자에 맡긴다.
func (t *Table) ReadAll() ([][]string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.readAllLocked()
}

func (t *Table) readAllLocked() ([][]string, error) {
	f, err := os.Open(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		rows = rows[1:] // 헤더 제거
	}
	return rows, nil
}

// Rewrite 임시 파일에 전체를 쓴 뒤 rename으로 교체한다.
func (t *Table) Rewrite(rows [][]string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rewriteLocked(rows)
}

func (t *Table) rewriteLocked(rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(t.path), 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(t.path), filepath.Base(t.path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(t.header); err != nil {
		tmp.Close()
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			tmp.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), t.path)
}

// Update ReadAll과 Rewrite를 한 잠금 아래 묶는다. fn이 받은 행을 고쳐
// 돌려주면 그대로 다시 쓴다. 읽기 실패는 빈 테이블로 취급한다.
func (t *Table) Update(fn func(rows [][]string) [][]string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	rows, err := t.readAllLocked()
	if err != nil {
		rows = nil
	}
	return t.rewriteLocked(fn(rows))
}
