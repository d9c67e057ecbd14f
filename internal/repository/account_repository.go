package repository

import (
	"time"

	"math_quiz_backend/internal/model"
	"math_quiz_backend/internal/util"
	"math_quiz_backend/pkg/filestore"
)

var accountsHeader = []string{"name", "pwd_hash", "created_at"}

// AccountRepository 계정 저장소. bcrypt 해시가 salt를 내장하므로 별도
// salt 열은 두지 않는다.
type AccountRepository struct {
	table *filestore.Table
}

func NewAccountRepository(path string) *AccountRepository {
	return &AccountRepository{table: filestore.NewTable(path, accountsHeader)}
}

func (r *AccountRepository) FindByName(name string) (*model.Account, error) {
	rows, err := r.table.ReadAll()
	if err != nil {
		return nil, util.ErrUserNotFound
	}
	for _, row := range rows {
		if len(row) >= 3 && row[0] == name {
			created, _ := time.Parse(time.RFC3339, row[2])
			return &model.Account{
				Name:         row[0],
				PasswordHash: row[1],
				CreatedAt:    created,
			}, nil
		}
	}
	return nil, util.ErrUserNotFound
}

func (r *AccountRepository) Create(acc *model.Account) error {
	return r.table.Append([]string{
		acc.Name,
		acc.PasswordHash,
		acc.CreatedAt.Format(time.RFC3339),
	})
}

func (r *AccountRepository) Delete(name string) error {
	return r.table.Update(func(rows [][]string) [][]string {
		kept := rows[:0]
		for _, row := range rows {
			if len(row) >= 1 && row[0] == name {
				continue
			}
			kept = append(kept, row)
		}
		return kept
	})
}
