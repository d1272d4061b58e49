package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"materiality/internal/cache"
	"materiality/internal/config"
	"materiality/internal/gateway"
	"materiality/internal/server"
	"materiality/internal/service/archive"
	"materiality/internal/service/excel"
	memstore "materiality/internal/service/store"
	"materiality/internal/store"
	"materiality/internal/util"
	"materiality/internal/workflow"
)

var (
	port       = flag.Int("port", 0, "服务端口 (config.toml 优先；仅当未显式配置 port 时生效)")
	devMode    = flag.Bool("dev", false, "开发模式")
	dataDir    = flag.String("dataDir", "", "数据目录 (覆盖配置文件)")
	gatewayURL = flag.String("gateway", "", "远端网关地址 (覆盖配置文件)")
	ephemeral  = flag.Bool("ephemeral", false, "仅内存存储，退出后数据不保留")
	noBrowser  = flag.Bool("noBrowser", false, "启动后不自动打开浏览器")
)

// recordStore 缓存后端 + 上传记录（SQLite Store 与 MemoryStore 均实现）
type recordStore interface {
	cache.Backend
	workflow.UploadLogger
}

func main() {
	flag.Parse()

	// .env 可选
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("读取 .env 失败: %v", err)
	}

	fmt.Println("==========================================")
	fmt.Println("  Materiality - 중대성 평가 워크벤치")
	fmt.Println("==========================================")

	// 加载配置
	cfg, info, err := config.LoadConfigWithInfo()
	if err != nil {
		log.Printf("加载配置失败，使用默认配置: %v", err)
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	}

	// 命令行参数覆盖配置
	if *port > 0 && !info.PortSpecified {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}
	if *gatewayURL != "" {
		cfg.Gateway.URL = *gatewayURL
	}

	// 确保数据目录存在
	dir, err := config.EnsureDataDir(cfg)
	if err != nil {
		log.Fatalf("创建数据目录失败: %v", err)
	}
	fmt.Printf("数据目录: %s\n", dir)

	var records recordStore
	var closeStore func() error
	if *ephemeral {
		records = memstore.NewMemoryStore()
		closeStore = func() error { return nil }
		fmt.Println("内存模式: 数据不会写入磁盘")
	} else {
		db, err := store.New(filepath.Join(dir, "materiality.db"))
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		records = db
		closeStore = db.Close
	}

	ctrl := workflow.New(workflow.Options{
		Cache: cache.New(records),
		Gateway: gateway.New(gateway.Options{
			BaseURL:           cfg.Gateway.URL,
			Timeout:           cfg.Gateway.Timeout(),
			AssessmentTimeout: cfg.Gateway.AssessmentTimeout(),
		}),
		Parser:  excel.NewParser(cfg.Upload.MaxBytes),
		Logs:    records,
		Archive: archive.New(dir),
		TopN:    cfg.Survey.DefaultTopN,
	})
	ctrl.Restore()

	// 创建服务器
	srv := server.NewServer(cfg, ctrl)

	// 构建地址
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	// 启动服务器
	go func() {
		fmt.Printf("服务启动中，监听端口 %d，网关 %s ...\n", cfg.Server.Port, cfg.Gateway.URL)
		if err := srv.Run(addr); err != nil {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 打开浏览器
	if !cfg.Server.DevMode && !*noBrowser {
		fmt.Printf("正在打开浏览器: %s\n", url)
		if err := util.OpenBrowserWithFallback(url); err != nil {
			fmt.Printf("无法自动打开浏览器，请手动访问: %s\n", url)
		}
	} else {
		fmt.Printf("请访问 %s\n", url)
	}

	fmt.Println("\n按 Ctrl+C 停止服务...")

	// 等待信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\n正在关闭服务...")
	if err := closeStore(); err != nil {
		log.Printf("关闭数据库失败: %v", err)
	}
}
