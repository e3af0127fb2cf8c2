package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/decker502/viewcam/pkg/app"
	"github.com/decker502/viewcam/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	verbose := flag.Bool("verbose", false, "Enable verbose logging")
	configPath := flag.String("config", "", "View config file (defaults to the embedded data/view.yaml)")
	tourPath := flag.String("tour", "", "Tour script (.tengo), overrides tour.script in the config")
	watch := flag.Bool("watch", false, "Reload the config file and tour script when they change")
	resetView := flag.Bool("reset-view", false, "Ignore the view saved on last exit")
	flag.Parse()

	// 初始化嵌入资源（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)

	viewApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		TourPath:   *tourPath,
		Watch:      *watch,
		ResetView:  *resetView,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化失败: %v\n", err)
		os.Exit(1)
	}

	w, h := viewApp.WindowSize()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(viewApp.WindowTitle())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	runErr := ebiten.RunGame(viewApp)

	// 窗口关闭时保存当前视图
	if !viewApp.Close() {
		log.Printf("[Main] Warning: failed to save view on exit")
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "运行失败: %v\n", runErr)
		os.Exit(1)
	}
}
