package gekko

import (
	"fmt"
	"reflect"
	"runtime"
)

type systemFn any

type Module interface {
	Install(app *App, cmd *Commands)
}

type App struct {
	stages    []Stage
	systems   map[string][]systemFn
	resources map[reflect.Type]any

	shutdownHooks []func()
	exiting       bool
	shutDown      bool
	frame         uint64
}

func NewApp() *App {
	app := &App{
		systems:   make(map[string][]systemFn),
		resources: make(map[reflect.Type]any),
	}
	for _, stage := range defaultStages {
		app.stages = append(app.stages, stage)
		app.initStage(stage)
	}
	return app
}

func (app *App) Commands() *Commands {
	return &Commands{
		app: app,
	}
}

// UseModules installs modules immediately, in order.
func (app *App) UseModules(modules ...Module) *App {
	cmd := app.Commands()
	for _, module := range modules {
		module.Install(app, cmd)
	}
	return app
}

// OnShutdown registers fn to run once when the app shuts down. Hooks run in
// reverse registration order.
func (app *App) OnShutdown(fn func()) {
	app.shutdownHooks = append(app.shutdownHooks, fn)
}

// Frame is the number of frames completed so far.
func (app *App) Frame() uint64 { return app.frame }

// Step runs every stage once.
func (app *App) Step() {
	for _, stage := range app.stages {
		for _, system := range app.systems[stage.Name] {
			app.callSystem(system)
		}
		app.FlushCommands()
	}
	app.frame++
}

// RunFrames runs n frames without shutting down.
func (app *App) RunFrames(n int) {
	for i := 0; i < n && !app.exiting; i++ {
		app.Step()
	}
}

// Run steps frames until shouldStop reports true or a system requests exit,
// then shuts the app down. A nil shouldStop runs until exit is requested.
func (app *App) Run(shouldStop func() bool) {
	defer app.Shutdown()
	for !app.exiting {
		if shouldStop != nil && shouldStop() {
			return
		}
		app.Step()
	}
}

func (app *App) Shutdown() {
	if app.shutDown {
		return
	}
	app.shutDown = true
	for i := len(app.shutdownHooks) - 1; i >= 0; i-- {
		app.shutdownHooks[i]()
	}
	app.shutdownHooks = nil
}

func (app *App) addResources(resources ...any) *App {
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if _, ok := app.resources[resourceType.Elem()]; ok {
			panic(fmt.Sprintf("%s is already in resources", resourceType))
		}

		app.resources[resourceType.Elem()] = resource
	}
	return app
}

// Resource returns the resource of type *T, or nil.
func Resource[T any](app *App) *T {
	r, ok := app.resources[reflect.TypeOf((*T)(nil)).Elem()]
	if !ok {
		return nil
	}
	return r.(*T)
}

func (app *App) callSystem(system systemFn) {
	app.callSystemInternal(system)
}

var typeOfCommands = reflect.TypeOf(Commands{})

func (app *App) callSystemInternal(system systemFn) {
	systemType := reflect.TypeOf(system)
	systemValue := reflect.ValueOf(system)

	args := make([]reflect.Value, systemType.NumIn())

	for i := 0; i < systemType.NumIn(); i++ {
		argType := systemType.In(i)
		if argType.Kind() != reflect.Pointer {
			panic(fmt.Sprintf("System %s takes non-pointer argument %s", systemType, argType))
		}
		underlyingType := argType.Elem()

		if underlyingType == typeOfCommands {
			args[i] = reflect.ValueOf(&Commands{app: app})
		} else if resource, argIsResource := app.resources[underlyingType]; argIsResource {
			args[i] = reflect.ValueOf(resource)
		} else {
			msg := fmt.Sprintf("Unable to resolve System dependency.\nSystem: %s\nSystem type: %s\nDependency: %s",
				runtime.FuncForPC(systemValue.Pointer()).Name(),
				fmt.Sprint(systemType),
				fmt.Sprint(argType),
			)
			app.Logger().Errorf("%s", msg)
			panic(msg)
		}
	}
	systemValue.Call(args)
}

// FlushCommands applies deferred entity removals at the end of each stage.
func (app *App) FlushCommands() {
	world := Resource[World](app)
	if world == nil {
		return
	}
	if n := world.FlushRemovals(); n > 0 {
		app.Logger().Debugf("flushed %d entities", n)
	}
}
