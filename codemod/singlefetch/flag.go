package singlefetch

import (
	"strconv"

	"github.com/viant/codemod/codemod"
	"github.com/viant/codemod/engine"
	"github.com/viant/codemod/syntax"
)

const defaultFlag = "unstable_singleFetch"

var viteConfigs = []string{"vite.config.ts", "vite.config.js", "vite.config.mts", "vite.config.mjs"}

type enableFlag struct {
	flag  string
	value bool
}

// NewEnableFlag creates the codemod that sets future[flagName] = flagValue.
func NewEnableFlag(params codemod.Params) (codemod.Codemod, error) {
	value, err := params.Bool("flagValue", true)
	if err != nil {
		return nil, err
	}
	return &enableFlag{flag: params.String("flagName", defaultFlag), value: value}, nil
}

func (c *enableFlag) Name() string { return EnableFlag }

func (c *enableFlag) Transform(doc *syntax.Document) (*codemod.Result, error) {
	if !codemod.HasSuffix(doc, viteConfigs...) {
		return nil, nil
	}
	config, err := RemixConfig(doc)
	if err != nil {
		return nil, err
	}
	if syntax.Property(config, "future") == nil {
		if err := doc.AddEntry(config, "future: {}"); err != nil {
			return nil, err
		}
	}
	future, err := engine.ResolveAs(syntax.Property(config, "future"), "future property", syntax.ObjectLiteral)
	if err != nil {
		return nil, err
	}
	if err := setFlag(doc, future, c.flag, c.value); err != nil {
		return nil, err
	}
	return &codemod.Result{Text: doc.Text()}, nil
}

// setFlag adds name: value to object, or flips an existing boolean literal.
func setFlag(doc *syntax.Document, object *syntax.Node, name string, value bool) error {
	text := strconv.FormatBool(value)
	flag := syntax.Property(object, name)
	if flag == nil {
		return doc.AddEntry(object, name+": "+text)
	}
	current := engine.Resolve(flag)
	if current.Is(syntax.TrueLiteral, syntax.FalseLiteral) && current.Text() != text {
		return doc.Replace(current, text)
	}
	return nil
}

// RemixConfig locates the remix() plugin options object of a vite config:
// default export, defineConfig() call, its object argument, the plugins
// array, the remix() call and finally its first argument.
func RemixConfig(doc *syntax.Document) (*syntax.Node, error) {
	symbol := doc.Symbols().DefaultExport()
	if symbol == nil {
		return nil, &engine.PreconditionError{Expected: "default export", Context: "vite config"}
	}
	exported, err := engine.ResolveSymbol(symbol)
	if err != nil {
		return nil, err
	}
	if exported.Kind() != syntax.CallExpression {
		return nil, &engine.PreconditionError{Expected: "call to defineConfig()", Actual: exported.Kind().String(), Context: "vite config default export"}
	}
	args := syntax.Args(exported)
	if len(args) == 0 {
		return nil, &engine.PreconditionError{Expected: "config argument", Context: "defineConfig()"}
	}
	viteConfig, err := engine.ResolveAs(args[0], "defineConfig() argument", syntax.ObjectLiteral)
	if err != nil {
		return nil, err
	}
	plugins := syntax.Property(viteConfig, "plugins")
	if plugins == nil {
		return nil, &engine.PreconditionError{Expected: "plugins property", Context: "defineConfig() argument"}
	}
	list, err := engine.ResolveAs(plugins, "plugins", syntax.ArrayLiteral)
	if err != nil {
		return nil, err
	}
	var remix *syntax.Node
	for _, element := range list.Children() {
		if element.Kind() == syntax.CallExpression && syntax.Callee(element) == "remix" {
			remix = element
			break
		}
	}
	if remix == nil {
		return nil, &engine.PreconditionError{Expected: "remix() call", Context: "plugins"}
	}
	remixArgs := syntax.Args(remix)
	if len(remixArgs) == 0 {
		return nil, &engine.PreconditionError{Expected: "config argument", Context: "remix()"}
	}
	return engine.ResolveAs(remixArgs[0], "remix() argument", syntax.ObjectLiteral)
}
