package repository

import (
	"context"
	"time"

	"proctor_backend/internal/model"
	"proctor_backend/internal/util"
	"proctor_backend/pkg/database"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

func (r *AttemptRepository) conn(ctx context.Context) *gorm.DB {
	return database.Conn(ctx, r.DB)
}

// Create stores the attempt together with its initial answers.
func (r *AttemptRepository) Create(ctx context.Context, attempt *model.TestAttempt) error {
	err := r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(attempt).Error; err != nil {
			return err
		}
		if len(attempt.Answers) > 0 {
			return tx.Create(&attempt.Answers).Error
		}
		return nil
	})
	return TranslateError(err)
}

func (r *AttemptRepository) Find(ctx context.Context, testID, testTakerID uint) (*model.TestAttempt, error) {
	db := r.conn(ctx)
	var attempt model.TestAttempt
	if err := db.Where("test_id = ? AND test_taker_id = ?", testID, testTakerID).First(&attempt).Error; err != nil {
		return nil, notFound(err, util.ErrAttemptNotFound)
	}
	attempts := []model.TestAttempt{attempt}
	if err := loadAnswers(db, attempts); err != nil {
		return nil, err
	}
	return &attempts[0], nil
}

func (r *AttemptRepository) ListByTest(ctx context.Context, testID uint) ([]model.TestAttempt, error) {
	return r.list(ctx, "test_id = ?", testID)
}

func (r *AttemptRepository) ListByInvigilator(ctx context.Context, invigilatorID uint) ([]model.TestAttempt, error) {
	return r.list(ctx, "invigilator_id = ?", invigilatorID)
}

func (r *AttemptRepository) list(ctx context.Context, query string, arg uint) ([]model.TestAttempt, error) {
	db := r.conn(ctx)
	var attempts []model.TestAttempt
	if err := db.Where(query, arg).Order("test_id, test_taker_id").Find(&attempts).Error; err != nil {
		return nil, err
	}
	if err := loadAnswers(db, attempts); err != nil {
		return nil, err
	}
	return attempts, nil
}

func (r *AttemptRepository) Finish(ctx context.Context, testID, testTakerID uint, at time.Time) error {
	return r.update(ctx, testID, testTakerID, "end_time", at)
}

func (r *AttemptRepository) SetCaughtCheating(ctx context.Context, testID, testTakerID uint, caught bool) error {
	return r.update(ctx, testID, testTakerID, "caught_cheating", caught)
}

func (r *AttemptRepository) update(ctx context.Context, testID, testTakerID uint, column string, value interface{}) error {
	res := r.conn(ctx).Model(&model.TestAttempt{}).
		Where("test_id = ? AND test_taker_id = ?", testID, testTakerID).
		Update(column, value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return util.ErrAttemptNotFound
	}
	return nil
}

func (r *AttemptRepository) SaveAnswer(ctx context.Context, answer *model.Answer) error {
	answer.MarksObtained = nil
	return r.conn(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "test_id"}, {Name: "test_taker_id"}, {Name: "question_discriminator"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"answer_type",
			"chosen_option_discriminator",
			"answer_text",
			"attached_file_url",
			"marks_obtained",
			"is_bookmarked",
			"updated_at",
		}),
	}).Create(answer).Error
}

func (r *AttemptRepository) SetMarks(ctx context.Context, testID, testTakerID, questionDiscriminator uint, marks int) error {
	res := r.conn(ctx).Model(&model.Answer{}).
		Where("test_id = ? AND test_taker_id = ? AND question_discriminator = ?", testID, testTakerID, questionDiscriminator).
		Update("marks_obtained", marks)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return util.ErrAnswerNotFound
	}
	return nil
}

func (r *AttemptRepository) AppendGaze(ctx context.Context, points []model.GazeData) error {
	if len(points) == 0 {
		return nil
	}
	return r.conn(ctx).Create(&points).Error
}

func (r *AttemptRepository) GazeLog(ctx context.Context, testID, testTakerID uint) ([]model.GazeData, error) {
	var points []model.GazeData
	err := r.conn(ctx).
		Where("test_id = ? AND test_taker_id = ?", testID, testTakerID).
		Order("timestamp, discriminator").
		Find(&points).Error
	return points, err
}

// loadAnswers fills Answers of every attempt in place, ordered by question.
func loadAnswers(db *gorm.DB, attempts []model.TestAttempt) error {
	if len(attempts) == 0 {
		return nil
	}
	type key struct{ test, taker uint }
	byKey := make(map[key]int, len(attempts))
	pairs := make([][]interface{}, len(attempts))
	for i, a := range attempts {
		byKey[key{a.TestID, a.TestTakerID}] = i
		pairs[i] = []interface{}{a.TestID, a.TestTakerID}
		attempts[i].Answers = nil
	}

	var answers []model.Answer
	if err := db.Where("(test_id, test_taker_id) IN ?", pairs).
		Order("test_id, test_taker_id, question_discriminator").
		Find(&answers).Error; err != nil {
		return err
	}
	for _, ans := range answers {
		a := &attempts[byKey[key{ans.TestID, ans.TestTakerID}]]
		a.Answers = append(a.Answers, ans)
	}
	return nil
}
