package repository

import (
	"context"

	"proctor_backend/internal/model"
	"proctor_backend/internal/util"
	"proctor_backend/pkg/database"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TestRepository struct {
	DB *gorm.DB
}

func NewTestRepository(db *gorm.DB) *TestRepository {
	return &TestRepository{DB: db}
}

func (r *TestRepository) conn(ctx context.Context) *gorm.DB {
	return database.Conn(ctx, r.DB)
}

// Create writes questions before their options; the correct-option link is
// checked at commit.
func (r *TestRepository) Create(ctx context.Context, test *model.Test) error {
	return r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(test).Error; err != nil {
			return err
		}
		if len(test.Questions) == 0 {
			return nil
		}

		var options []model.Option
		for i := range test.Questions {
			q := &test.Questions[i]
			q.SetKey(test.ID, uint(i+1))
			q.Number = i
			options = append(options, q.Options...)
		}
		if err := tx.Create(&test.Questions).Error; err != nil {
			return err
		}
		if len(options) > 0 {
			if err := tx.Create(&options).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *TestRepository) FindByID(ctx context.Context, id uint) (*model.Test, error) {
	db := r.conn(ctx)
	var test model.Test
	if err := db.First(&test, id).Error; err != nil {
		return nil, notFound(err, util.ErrTestNotFound)
	}
	tests := []model.Test{test}
	if err := loadQuestions(db, tests); err != nil {
		return nil, err
	}
	return &tests[0], nil
}

func (r *TestRepository) ListByCreator(ctx context.Context, creatorID uint) ([]model.Test, error) {
	db := r.conn(ctx)
	var tests []model.Test
	if err := db.Where("creator_id = ?", creatorID).Order("id").Find(&tests).Error; err != nil {
		return nil, err
	}
	if err := loadQuestions(db, tests); err != nil {
		return nil, err
	}
	return tests, nil
}

func (r *TestRepository) Delete(ctx context.Context, id uint) error {
	res := r.conn(ctx).Delete(&model.Test{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return util.ErrTestNotFound
	}
	return nil
}

func (r *TestRepository) InsertQuestion(ctx context.Context, testID uint, q *model.Question, position int) error {
	return r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		// serialises discriminator assignment per test
		var test model.Test
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&test, testID).Error; err != nil {
			return notFound(err, util.ErrTestNotFound)
		}

		var stats struct {
			Count   int
			MaxDisc uint
		}
		if err := tx.Model(&model.Question{}).
			Select("COUNT(*) AS count, COALESCE(MAX(discriminator), 0) AS max_disc").
			Where("test_id = ?", testID).
			Scan(&stats).Error; err != nil {
			return err
		}
		if position < 0 || position > stats.Count {
			position = stats.Count
		}

		// number is deferred-unique, so the shift may collide until commit
		if err := tx.Model(&model.Question{}).
			Where("test_id = ? AND number >= ?", testID, position).
			Update("number", gorm.Expr("number + 1")).Error; err != nil {
			return err
		}

		q.SetKey(testID, stats.MaxDisc+1)
		q.Number = position
		if err := tx.Create(q).Error; err != nil {
			return err
		}
		if len(q.Options) > 0 {
			if err := tx.Create(&q.Options).Error; err != nil {
				return err
			}
		}

		// attempts already started answer every question, including this one
		var takerIDs []uint
		if err := tx.Model(&model.TestAttempt{}).
			Where("test_id = ?", testID).
			Pluck("test_taker_id", &takerIDs).Error; err != nil {
			return err
		}
		if len(takerIDs) == 0 {
			return nil
		}
		answers := make([]model.Answer, len(takerIDs))
		for i, takerID := range takerIDs {
			answers[i] = model.NewBlankAnswer(q, takerID)
		}
		return tx.Create(&answers).Error
	})
}

func (r *TestRepository) ReorderQuestions(ctx context.Context, testID uint, discriminators []uint) error {
	return r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		for rank, disc := range discriminators {
			res := tx.Model(&model.Question{}).
				Where("test_id = ? AND discriminator = ?", testID, disc).
				Update("number", rank)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return util.ErrQuestionNotFound
			}
		}
		return nil
	})
}

// loadQuestions fills Questions (and their Options) of every test in place.
func loadQuestions(db *gorm.DB, tests []model.Test) error {
	if len(tests) == 0 {
		return nil
	}
	ids := make([]uint, len(tests))
	byID := make(map[uint]int, len(tests))
	for i, t := range tests {
		ids[i] = t.ID
		byID[t.ID] = i
	}

	var questions []model.Question
	if err := db.Where("test_id IN ?", ids).Order("test_id, number").Find(&questions).Error; err != nil {
		return err
	}
	var options []model.Option
	if err := db.Where("test_id IN ?", ids).Order("test_id, question_discriminator, number").Find(&options).Error; err != nil {
		return err
	}

	type key struct{ test, question uint }
	grouped := make(map[key][]model.Option)
	for _, o := range options {
		k := key{o.TestID, o.QuestionDiscriminator}
		grouped[k] = append(grouped[k], o)
	}

	for i := range tests {
		tests[i].Questions = nil
	}
	for _, q := range questions {
		q.Options = grouped[key{q.TestID, q.Discriminator}]
		t := &tests[byID[q.TestID]]
		t.Questions = append(t.Questions, q)
	}
	return nil
}
