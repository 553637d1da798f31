package database

import (
	"fmt"

	"gorm.io/gorm"
)

type constraint struct {
	table      string
	name       string
	definition string
}

// Order matters: unique keys come before the foreign keys that target them.
var constraints = []constraint{
	// role records live and die with their user
	{"test_setters", "test_setters_user_fkey", "FOREIGN KEY (id) REFERENCES users(id) ON DELETE CASCADE"},
	{"test_takers", "test_takers_user_fkey", "FOREIGN KEY (id) REFERENCES users(id) ON DELETE CASCADE"},
	{"invigilators", "invigilators_user_fkey", "FOREIGN KEY (id) REFERENCES users(id) ON DELETE CASCADE"},

	{"tests", "tests_creator_fkey", "FOREIGN KEY (creator_id) REFERENCES test_setters(id) ON DELETE CASCADE"},
	{"tests", "tests_window_check", "CHECK (end_time > start_time)"},

	{"questions", "questions_test_fkey", "FOREIGN KEY (test_id) REFERENCES tests(id) ON DELETE CASCADE"},
	{"questions", "questions_type_check", "CHECK (question_type IN ('multiple_choice', 'text_field', 'attachment'))"},
	{"questions", "questions_max_marks_check", "CHECK (max_marks >= 0)"},
	{"questions", "questions_correct_option_check", "CHECK (question_type = 'multiple_choice' OR correct_option_discriminator IS NULL)"},
	{"questions", "questions_number_uq", "UNIQUE (test_id, number) DEFERRABLE INITIALLY DEFERRED"},
	{"questions", "questions_variant_key", "UNIQUE (test_id, discriminator, question_type)"},

	{"options", "options_question_fkey", "FOREIGN KEY (test_id, question_discriminator) REFERENCES questions(test_id, discriminator) ON DELETE CASCADE"},
	{"options", "options_number_uq", "UNIQUE (test_id, question_discriminator, number) DEFERRABLE INITIALLY DEFERRED"},
	// written in the same transaction as the options it points at
	{"questions", "questions_correct_option_fkey", "FOREIGN KEY (test_id, discriminator, correct_option_discriminator) REFERENCES options(test_id, question_discriminator, discriminator) DEFERRABLE INITIALLY DEFERRED"},

	{"test_attempts", "test_attempts_test_fkey", "FOREIGN KEY (test_id) REFERENCES tests(id) ON DELETE CASCADE"},
	{"test_attempts", "test_attempts_taker_fkey", "FOREIGN KEY (test_taker_id) REFERENCES test_takers(id) ON DELETE CASCADE"},
	{"test_attempts", "test_attempts_invigilator_fkey", "FOREIGN KEY (invigilator_id) REFERENCES invigilators(id) ON DELETE SET NULL"},

	{"answers", "answers_attempt_fkey", "FOREIGN KEY (test_id, test_taker_id) REFERENCES test_attempts(test_id, test_taker_id) ON DELETE CASCADE"},
	// the answer's variant must be its question's variant
	{"answers", "answers_question_fkey", "FOREIGN KEY (test_id, question_discriminator, answer_type) REFERENCES questions(test_id, discriminator, question_type) ON DELETE CASCADE"},
	{"answers", "answers_chosen_option_fkey", "FOREIGN KEY (test_id, question_discriminator, chosen_option_discriminator) REFERENCES options(test_id, question_discriminator, discriminator) ON DELETE CASCADE"},
	{"answers", "answers_variant_check", "CHECK ((answer_type = 'multiple_choice' OR chosen_option_discriminator IS NULL) AND (answer_type = 'text_field' OR answer_text IS NULL) AND (answer_type = 'attachment' OR attached_file_url IS NULL))"},
	{"answers", "answers_marks_check", "CHECK (marks_obtained IS NULL OR marks_obtained >= 0)"},

	{"gaze_data", "gaze_data_attempt_fkey", "FOREIGN KEY (test_id, test_taker_id) REFERENCES test_attempts(test_id, test_taker_id) ON DELETE CASCADE"},
}

func ensureConstraint(db *gorm.DB, c constraint) error {
	var exists bool
	if err := db.Raw("SELECT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = ?)", c.name).Scan(&exists).Error; err != nil {
		return fmt.Errorf("look up constraint %s: %w", c.name, err)
	}
	if exists {
		return nil
	}
	stmt := fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s %s", c.table, c.name, c.definition)
	if err := db.Exec(stmt).Error; err != nil {
		return fmt.Errorf("add constraint %s: %w", c.name, err)
	}
	return nil
}
