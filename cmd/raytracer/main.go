package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"sphere-raytracer/internal/camera"
	"sphere-raytracer/internal/commands"
	"sphere-raytracer/internal/engineconfig"
	"sphere-raytracer/internal/env"
	"sphere-raytracer/internal/frame"
	"sphere-raytracer/internal/glhost"
	"sphere-raytracer/internal/graphics"
	"sphere-raytracer/internal/logger"
	"sphere-raytracer/internal/scene"
	"sphere-raytracer/internal/shader"
)

func init() {
	// GLFW, raylib and OpenGL must be driven from the main thread.
	runtime.LockOSThread()
}

type window interface {
	frame.Host
	frame.Renderer
	Close()
}

func main() {
	if err := env.Load(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "env: %v\n", err)
	}
	configPath := env.ConfigPath(engineconfig.DefaultPath)
	prefs, _ := engineconfig.Load(configPath)
	log := logger.New(prefs.LogFile)

	reg := commands.NewRegistry("run")

	runFlags := flag.NewFlagSet("run", flag.ContinueOnError)
	backend := runFlags.String("backend", prefs.Backend, "window backend: raylib or glfw")
	seed := runFlags.Int64("seed", prefs.Seed, "scene seed, 0 seeds from the clock")
	bounces := runFlags.Int("bounces", prefs.MaxBounces, "initial max bounces (0-10)")
	reg.Register("run", "open the window and render", runFlags, func() error {
		prefs.Backend = *backend
		prefs.Seed = *seed
		prefs.MaxBounces = *bounces
		return run(prefs.Clamp(), log)
	})

	cfgFlags := flag.NewFlagSet("config", flag.ContinueOnError)
	out := cfgFlags.String("o", configPath, "output path")
	reg.Register("config", "write the default engine config", cfgFlags, func() error {
		if err := engineconfig.Save(*out, engineconfig.Default()); err != nil {
			return err
		}
		fmt.Println("wrote", *out)
		return nil
	})

	shFlags := flag.NewFlagSet("shader", flag.ContinueOnError)
	count := shFlags.Int("n", 0, "sphere count, 0 uses the scene file")
	reg.Register("shader", "print the fragment shader with the sphere count injected", shFlags, func() error {
		n := *count
		if n <= 0 {
			params, err := scene.LoadParams(prefs.SceneFile)
			if err != nil {
				return err
			}
			n = params.SphereCount
		}
		src, err := shader.Load(prefs.FragmentShader, n)
		if err != nil {
			return err
		}
		fmt.Print(src)
		return nil
	})

	if err := reg.Execute(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			reg.Usage(os.Stderr)
			return
		}
		if errors.Is(err, commands.ErrUnknown) {
			reg.Usage(os.Stderr)
		}
		log.Logf("fatal: %v", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(prefs engineconfig.EnginePrefs, log *logger.Logger) error {
	params, err := scene.LoadParams(prefs.SceneFile)
	if err != nil {
		return err
	}

	cfg := camera.DefaultConfig()
	cfg.Speed = prefs.CameraSpeed
	cfg.Sensitivity = prefs.MouseSensitivity
	cam := camera.New(cfg)

	mgr := scene.NewManager(params, scene.NewRand(prefs.Seed))
	mgr.Generate(params.SphereCount)

	win, err := open(prefs, params.SphereCount, log)
	if err != nil {
		return err
	}
	defer win.Close()

	loop := frame.NewLoop(win, win, cam, mgr, frame.Options{
		SphereCount: params.SphereCount,
		MaxBounces:  prefs.MaxBounces,
		Log:         log,
	})
	log.Logf("render loop started: backend %s, %d spheres, %d bounces", prefs.Backend, mgr.Len(), loop.MaxBounces())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return loop.Run(ctx)
}

func open(prefs engineconfig.EnginePrefs, count int, log *logger.Logger) (window, error) {
	switch prefs.Backend {
	case engineconfig.BackendGLFW:
		return glhost.Open(glhost.Config{
			Title:          prefs.Title,
			Width:          prefs.WindowWidth,
			Height:         prefs.WindowHeight,
			VertexShader:   prefs.VertexShader,
			FragmentShader: prefs.FragmentShader,
			SphereCount:    count,
		}, log)
	default:
		return graphics.Open(graphics.Config{
			Title:          prefs.Title,
			Width:          prefs.WindowWidth,
			Height:         prefs.WindowHeight,
			TargetFPS:      prefs.TargetFPS,
			FragmentShader: prefs.FragmentShader,
			SphereCount:    count,
			ShowFPS:        prefs.ShowFPS,
		}, log)
	}
}
