// 离线导出答卷 CSV 脚本
//
// 用于服务未启动时直接从数据库导出，例如迁移前备份。
//
// 用法: go run scripts/export_results.go -project 3 -questions 20 -out results.csv

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"quiz_assessment_backend/internal/config"
	"quiz_assessment_backend/internal/repository"
	"quiz_assessment_backend/internal/service"
	"quiz_assessment_backend/pkg/database"
	"quiz_assessment_backend/pkg/logger"

	"gopkg.in/yaml.v3"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	projectID := flag.Uint("project", 0, "项目ID，0 表示全部")
	questions := flag.Int("questions", service.DefaultQuestionCount, "题目列数")
	out := flag.String("out", "", "输出文件，默认使用导出文件名")
	flag.Parse()

	data, err := os.ReadFile(*configPath)
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}
	if pwd := os.Getenv("DATABASE_PASSWORD"); pwd != "" {
		cfg.Database.Password = pwd
	}

	logger.InitLogger(&cfg)

	db, err := database.InitDB(&cfg.Database, false)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	exporter := service.NewExportService(
		repository.NewResultRepository(db),
		repository.NewProjectRepository(db),
		nil,
		*questions,
	)

	filename, csvData, err := exporter.Export(context.Background(), uint(*projectID), *questions)
	if err != nil {
		log.Fatalf("导出失败: %v", err)
	}

	target := *out
	if target == "" {
		target = filename
	}
	if err := os.WriteFile(target, csvData, 0644); err != nil {
		log.Fatalf("写入文件失败: %v", err)
	}
	log.Printf("已导出 %d 字节到 %s", len(csvData), target)
}
