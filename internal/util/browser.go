package util

import (
	"errors"
	"os"
	"os/exec"
	"runtime"
)

// ErrHeadless 无图形环境，无法打开浏览器
var ErrHeadless = errors.New("no graphical session")

// browserCommand 各平台默认的打开方式；Windows 用 url.dll 兼容 Win7
func browserCommand(url string) *exec.Cmd {
	switch runtime.GOOS {
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		return exec.Command("open", url)
	default:
		return exec.Command("xdg-open", url)
	}
}

// headless Linux 下没有 DISPLAY/WAYLAND_DISPLAY 时视为无界面
func headless() bool {
	if runtime.GOOS != "linux" {
		return false
	}
	return os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == ""
}

// OpenBrowser 打开默认浏览器
func OpenBrowser(url string) error {
	if headless() {
		return ErrHeadless
	}
	return browserCommand(url).Start()
}

// OpenBrowserWithFallback 默认方式失败时依次尝试备选浏览器
func OpenBrowserWithFallback(url string) error {
	err := OpenBrowser(url)
	if err == nil || errors.Is(err, ErrHeadless) {
		return err
	}

	var fallbacks [][]string
	switch runtime.GOOS {
	case "windows":
		fallbacks = [][]string{{"explorer", url}}
	case "linux":
		for _, b := range []string{"google-chrome", "firefox", "chromium-browser", "sensible-browser"} {
			fallbacks = append(fallbacks, []string{b, url})
		}
	}
	for _, args := range fallbacks {
		if exec.Command(args[0], args[1:]...).Start() == nil {
			return nil
		}
	}
	return err
}
