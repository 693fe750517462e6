// @title 测评答卷后端 API
// @version 1.0
// @description 测评项目、题库、答卷提交与成绩分析服务。

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey AdminPassword
// @in header
// @name X-Admin-Password

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"errors"
	"flag"
	"io/fs"
	"log"
	"quiz_assessment_backend/internal/app"
	"quiz_assessment_backend/internal/config"
	"quiz_assessment_backend/pkg/logger"

	"github.com/joho/godotenv"
)

func main() {
	// 命令行参数
	migrateOnly := flag.Bool("migrate-only", false, "只执行数据库迁移，完成后退出")
	migrate := flag.Bool("migrate", false, "启动时强制执行数据库迁移（即使是 release 模式）")
	configDir := flag.String("config", "configs", "配置文件目录")
	flag.Parse()

	// 本地开发时从 .env 读取 ADMIN_PASSWORD 等变量
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Failed to load .env: %v", err)
	}

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 设置迁移标志
	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	// 迁移完成后直接退出
	if *migrateOnly {
		log.Println("数据库迁移完成，退出程序")
		return
	}

	application.Run()
}
