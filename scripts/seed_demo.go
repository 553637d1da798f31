// 导入演示数据：账号、角色和一场考试
//
// 考试定义见 configs/seed_demo.yaml，所有写入在同一个事务中完成。
//
// 用法: go run scripts/seed_demo.go [-file configs/seed_demo.yaml]

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"proctor_backend/internal/config"
	"proctor_backend/internal/model"
	"proctor_backend/internal/repository"
	"proctor_backend/internal/service"
	"proctor_backend/pkg/database"
	"proctor_backend/pkg/logger"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

type seedUser struct {
	Username string           `yaml:"username"`
	FullName string           `yaml:"fullName"`
	Email    string           `yaml:"email"`
	Password string           `yaml:"password"`
	Roles    []model.UserRole `yaml:"roles"`
}

type seedQuestion struct {
	Text     string             `yaml:"text"`
	MaxMarks int                `yaml:"maxMarks"`
	Type     model.QuestionType `yaml:"type"`
	Options  []string           `yaml:"options"`
	// 1 起始，对应 options 中的位置
	Correct int `yaml:"correct"`
}

type seedTest struct {
	Creator     string         `yaml:"creator"`
	Title       string         `yaml:"title"`
	Description string         `yaml:"description"`
	Guidelines  string         `yaml:"guidelines"`
	StartsIn    time.Duration  `yaml:"startsIn"`
	Duration    time.Duration  `yaml:"duration"`
	Questions   []seedQuestion `yaml:"questions"`
}

type seedFile struct {
	Users []seedUser `yaml:"users"`
	Test  *seedTest  `yaml:"test"`
}

func (q seedQuestion) request() (service.QuestionReq, error) {
	req := service.QuestionReq{QuestionText: q.Text, MaxMarks: q.MaxMarks}
	switch q.Type {
	case model.TextFieldType:
		req.TextFieldQuestion = &service.EmptyVariant{}
	case model.AttachmentType:
		req.AttachmentQuestion = &service.EmptyVariant{}
	case model.MultipleChoiceType:
		mc := &service.MultipleChoiceReq{}
		for i, text := range q.Options {
			mc.Options = append(mc.Options, service.OptionReq{Discriminator: uint(i + 1), OptionText: text})
		}
		if q.Correct > 0 {
			correct := uint(q.Correct)
			mc.CorrectOptionDiscriminator = &correct
		}
		req.MultipleChoiceQuestion = mc
	default:
		return req, fmt.Errorf("question %q: unknown type %q", q.Text, q.Type)
	}
	return req, nil
}

func main() {
	file := flag.String("file", "configs/seed_demo.yaml", "seed definition")
	flag.Parse()

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("无法读取种子文件: %v", err)
	}
	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		log.Fatalf("解析种子文件失败: %v", err)
	}

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database, true)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	hasher, err := service.NewPasswordHasher(cfg.Bcrypt.Cost)
	if err != nil {
		log.Fatalf("初始化密码哈希失败: %v", err)
	}
	users := repository.NewUserRepository(db)
	auth := service.NewAuthService(users, nil, hasher, &cfg.Session)
	userService := service.NewUserService(users)
	tests := service.NewTestService(repository.NewTestRepository(db), repository.NewAttemptRepository(db))

	err = db.Transaction(func(tx *gorm.DB) error {
		ctx := database.WithTx(context.Background(), tx)
		ids := make(map[string]uint, len(seed.Users))
		for _, u := range seed.Users {
			user, err := auth.CreateAccount(ctx, service.CreateAccountReq{
				Username: u.Username,
				FullName: u.FullName,
				Email:    u.Email,
				Password: u.Password,
			})
			if err != nil {
				return fmt.Errorf("create %s: %w", u.Username, err)
			}
			for _, role := range u.Roles {
				if err := userService.AssumeRole(ctx, user.ID, role); err != nil {
					return fmt.Errorf("%s assume %s: %w", u.Username, role, err)
				}
			}
			ids[u.Username] = user.ID
			log.Printf("创建用户 %s (id=%d)", u.Username, user.ID)
		}

		if seed.Test == nil {
			return nil
		}
		creator, ok := ids[seed.Test.Creator]
		if !ok {
			return fmt.Errorf("test creator %q is not among the seeded users", seed.Test.Creator)
		}
		start := time.Now().Add(seed.Test.StartsIn).UTC().Truncate(time.Minute)
		req := service.CreateTestReq{
			Title:       seed.Test.Title,
			Description: seed.Test.Description,
			Guidelines:  seed.Test.Guidelines,
			StartTime:   start,
			EndTime:     start.Add(seed.Test.Duration),
		}
		for _, q := range seed.Test.Questions {
			qr, err := q.request()
			if err != nil {
				return err
			}
			req.Questions = append(req.Questions, qr)
		}
		test, err := tests.CreateTest(ctx, creator, req)
		if err != nil {
			return fmt.Errorf("create test: %w", err)
		}
		log.Printf("创建考试 %q (id=%d, %s - %s)", test.Title, test.ID, test.StartTime.Format(time.RFC3339), test.EndTime.Format(time.RFC3339))
		return nil
	})
	if err != nil {
		log.Fatalf("导入失败: %v", repository.TranslateError(err))
	}
	log.Println("完成！")
}
