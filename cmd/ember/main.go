package main

import (
	"flag"
	"os"
	"runtime"

	"github.com/sirupsen/logrus"

	"github.com/vkngwrapper/ember/internal/config"
	"github.com/vkngwrapper/ember/internal/gfx"
	"github.com/vkngwrapper/ember/internal/vulkan"
	"github.com/vkngwrapper/ember/internal/window"
)

func init() {
	// SDL and the presentation engine expect calls from the main thread.
	runtime.LockOSThread()
}

var (
	envFile = flag.String("env", "", "Load settings from a dotenv file")
	debug   = flag.Bool("vkdbg", false, "Load Vulkan validation layers")
)

type application struct {
	cfg config.Configuration
	log *logrus.Logger
}

func (app *application) Run() error {
	w, err := window.Open(window.Config{
		Title:  app.cfg.Window.Title,
		Width:  app.cfg.Window.Width,
		Height: app.cfg.Window.Height,
	})
	if err != nil {
		return err
	}
	defer w.Close()

	loader, err := vulkan.NewLoader(w.ProcAddr())
	if err != nil {
		return err
	}

	renderer, err := gfx.Initialize(loader, w, gfx.Options{
		ApplicationName: app.cfg.Window.Title,
		Validation:      app.cfg.Renderer.Validation || *debug,
		ClearColor:      &app.cfg.Renderer.ClearColor,
	})
	if err != nil {
		return err
	}
	defer renderer.Destroy()

	device := renderer.PhysicalDevice()
	swapchain := renderer.Config()
	app.log.WithFields(logrus.Fields{
		"device":      device.Device.Name(),
		"extent":      swapchain.Extent,
		"presentMode": swapchain.PresentMode,
		"images":      swapchain.ImageCount,
	}).Info("renderer ready")

	return gfx.Run(w, renderer)
}

func main() {
	flag.Parse()

	var files []string
	if *envFile != "" {
		files = append(files, *envFile)
	}

	cfg, err := config.Load(files...)
	if err != nil {
		logrus.Fatalf("%+v", err)
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logger.SetLevel(cfg.Log.Level)
	gfx.SetLogger(logger)

	app := &application{cfg: cfg, log: logger}
	if err := app.Run(); err != nil {
		logger.Fatalf("%+v", err)
	}
}
