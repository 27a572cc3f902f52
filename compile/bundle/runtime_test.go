package bundle

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/dop251/goja"

	"sitec/common"
	"sitec/site"
)

// domStub is just enough browser for the runtime: flat list of containers,
// recorded timers and observers.
const domStub = `
var window = globalThis;
var __log = [], __errors = [], __timers = [], __observers = [], __vars = {};
var __reducedMotion = false;
var console = {
  error: function () { __errors.push(Array.prototype.slice.call(arguments).map(String).join(" ")); },
  log: function () {}
};

function Element(type, id) {
  this.attrs = {};
  if (type) { this.attrs["data-block"] = type; this.attrs["data-block-id"] = id; }
}
Element.prototype.setAttribute = function (k, v) { this.attrs[k] = String(v); };
Element.prototype.getAttribute = function (k) {
  return Object.prototype.hasOwnProperty.call(this.attrs, k) ? this.attrs[k] : null;
};
Element.prototype.removeAttribute = function (k) { delete this.attrs[k]; };
Element.prototype.querySelector = function () { return null; };

var __elements = __containers.map(function (c) { return new Element(c[0], c[1]); });

var document = {
  readyState: "complete",
  documentElement: new Element(),
  addEventListener: function () {},
  querySelector: function (sel) {
    var m = /^\[data-block="([^"]*)"\]\[data-block-id="([^"]*)"\]$/.exec(sel);
    if (!m) return null;
    for (var i = 0; i < __elements.length; i++) {
      var a = __elements[i].attrs;
      if (a["data-block"] === m[1] && a["data-block-id"] === m[2]) return __elements[i];
    }
    return null;
  },
  querySelectorAll: function (sel) { return sel === "[data-block-id]" ? __elements.slice() : []; }
};

function setTimeout(fn, ms) { __timers.push({ fn: fn, ms: ms }); return __timers.length; }
function getComputedStyle() {
  return { getPropertyValue: function (k) { return __vars[k] || ""; } };
}
window.matchMedia = function (q) { return { matches: __reducedMotion && q.indexOf("reduce") >= 0 }; };

function IntersectionObserver(cb, opts) {
  this.cb = cb; this.opts = opts; this.observed = [];
  __observers.push(this);
}
IntersectionObserver.prototype.observe = function (el) { this.observed.push(el); };
IntersectionObserver.prototype.unobserve = function (el) {
  this.observed = this.observed.filter(function (x) { return x !== el; });
};

function __runTimers(upTo) {
  var due = __timers.filter(function (t) { return t.ms <= upTo; });
  __timers = __timers.filter(function (t) { return t.ms > upTo; });
  due.sort(function (a, b) { return a.ms - b.ms; });
  due.forEach(function (t) { t.fn(); });
}
function __revealed() {
  return __elements
    .filter(function (e) { return e.getAttribute("data-revealed") === "true"; })
    .map(function (e) { return e.attrs["data-block-id"]; })
    .join(",");
}
`

const (
	brokenScript = `export function enhance(ctx: any) {
  ctx.onCleanup(() => __log.push("broken cleanup"));
  throw new Error("broken on mount");
}
`
	counterScript = `export function enhance(ctx: any) {
  const id = ctx.block.id;
  __log.push("mount " + id);
  ctx.onCleanup(() => __log.push("first " + id));
  ctx.onCleanup(() => { throw new Error("cleanup failed"); });
  ctx.onCleanup(() => __log.push("second " + id));
}
`
	lazyScript = `export async function enhance(ctx: any) {
  await Promise.resolve();
  throw new Error("lazy failed");
}
`
)

func runtimeSite(reveal common.RevealType) *site.Site {
	return &site.Site{
		Theme: site.Theme{Animations: site.Animations{Reveal: site.Reveal{Type: reveal}}},
		Blocks: []site.Block{
			{ID: "b1", Type: "broken"},
			{ID: "c1", Type: "counter"},
			{ID: "z1", Type: "lazy"},
			{ID: "c2", Type: "counter"},
			{ID: "t1", Type: "text"},
		},
	}
}

// startPage bundles runtime for s and runs it against stub document after
// setup script.
func startPage(t *testing.T, s *site.Site, setup string) *goja.Runtime {
	t.Helper()
	files := fstest.MapFS{
		"blocks/broken/enhance.ts":  &fstest.MapFile{Data: []byte(brokenScript)},
		"blocks/counter/enhance.ts": &fstest.MapFile{Data: []byte(counterScript)},
		"blocks/lazy/enhance.ts":    &fstest.MapFile{Data: []byte(lazyScript)},
	}
	res, err := testBundler(t, files, Options{}).Bundle(context.Background(), s, site.Dedupe(s.Blocks))
	if err != nil {
		t.Fatalf("Bundle() error = %v", err)
	}

	containers := make([][2]string, 0, len(s.Blocks))
	for _, b := range s.Blocks {
		containers = append(containers, [2]string{b.Type, b.ID})
	}
	data, err := json.Marshal(containers)
	if err != nil {
		t.Fatal(err)
	}

	vm := goja.New()
	for _, src := range []string{"var __containers = " + string(data) + ";", domStub, setup, res.JS} {
		if _, err := vm.RunString(src); err != nil {
			t.Fatalf("script error = %v\n%s", err, res.JS)
		}
	}
	return vm
}

func evalJS(t *testing.T, vm *goja.Runtime, expr string) string {
	t.Helper()
	v, err := vm.RunString(expr)
	if err != nil {
		t.Fatalf("%s: %v", expr, err)
	}
	return v.String()
}

func TestRuntime_Mount(t *testing.T) {
	vm := startPage(t, runtimeSite(common.RevealTypeFade), "")

	if got := evalJS(t, vm, `document.documentElement.getAttribute("data-js")`); got != "true" {
		t.Errorf("data-js = %q", got)
	}
	// broken block before them does not stop later blocks
	if got := evalJS(t, vm, `JSON.stringify(__log)`); got != `["mount c1","mount c2"]` {
		t.Errorf("mounted = %s", got)
	}

	errs := evalJS(t, vm, `__errors.join("\n")`)
	lines := strings.Split(errs, "\n")
	if len(lines) != 2 {
		t.Fatalf("errors = %q", errs)
	}
	if !strings.Contains(lines[0], "block broken#b1 failed to mount") || !strings.Contains(lines[0], "broken on mount") {
		t.Errorf("sync failure reported as %q", lines[0])
	}
	if !strings.Contains(lines[1], "block lazy#z1 failed to mount") || !strings.Contains(lines[1], "lazy failed") {
		t.Errorf("async failure reported as %q", lines[1])
	}

	if got := evalJS(t, vm, `typeof document.querySelector('[data-block="text"][data-block-id="t1"]').__destroyBlock`); got != "undefined" {
		t.Errorf("block without script got teardown: %s", got)
	}
}

func TestRuntime_Cleanup(t *testing.T) {
	vm := startPage(t, runtimeSite(common.RevealTypeFade), "")

	evalJS(t, vm, `var c1 = document.querySelector('[data-block="counter"][data-block-id="c1"]');
c1.__destroyBlock();
c1.__destroyBlock();`)
	if got := evalJS(t, vm, `JSON.stringify(__log.slice(2))`); got != `["first c1","second c1"]` {
		t.Errorf("cleanups = %s", got)
	}

	// cleanup registered before enhance failed still runs
	evalJS(t, vm, `document.querySelector('[data-block="broken"][data-block-id="b1"]').__destroyBlock()`)
	if got := evalJS(t, vm, `__log[__log.length - 1]`); got != "broken cleanup" {
		t.Errorf("last cleanup = %q", got)
	}
}

func TestRuntime_Reveal(t *testing.T) {
	const all = "b1,c1,z1,c2,t1"

	t.Run("reduced motion", func(t *testing.T) {
		vm := startPage(t, runtimeSite(common.RevealTypeFade), `__reducedMotion = true;`)
		if got := evalJS(t, vm, `__revealed()`); got != all {
			t.Errorf("revealed = %q", got)
		}
		if got := evalJS(t, vm, `__observers.length + "/" + __timers.length`); got != "0/0" {
			t.Errorf("observers/timers = %s", got)
		}
	})

	t.Run("no observer", func(t *testing.T) {
		vm := startPage(t, runtimeSite(common.RevealTypeScale), `IntersectionObserver = undefined;`)
		if got := evalJS(t, vm, `__revealed()`); got != all {
			t.Errorf("revealed = %q", got)
		}
	})

	t.Run("live property disables", func(t *testing.T) {
		vm := startPage(t, runtimeSite(common.RevealTypeFade), `__vars["--reveal-type"] = "none";`)
		if got := evalJS(t, vm, `__revealed()`); got != all {
			t.Errorf("revealed = %q", got)
		}
	})

	t.Run("fail safe", func(t *testing.T) {
		vm := startPage(t, runtimeSite(common.RevealTypeFly), "")
		if got := evalJS(t, vm, `__revealed()`); got != "" {
			t.Errorf("revealed before intersection = %q", got)
		}
		if got := evalJS(t, vm, `__observers[0].observed.length + "@" + __observers[0].opts.threshold`); got != "5@0.25" {
			t.Errorf("observed = %s", got)
		}
		evalJS(t, vm, `__runTimers(1499)`)
		if got := evalJS(t, vm, `__revealed()`); got != "" {
			t.Errorf("revealed before fail safe = %q", got)
		}
		evalJS(t, vm, `__runTimers(1500)`)
		if got := evalJS(t, vm, `__revealed()`); got != all {
			t.Errorf("revealed after fail safe = %q", got)
		}
	})

	t.Run("stagger", func(t *testing.T) {
		vm := startPage(t, runtimeSite(common.RevealTypeFade), "")
		evalJS(t, vm, `__observers[0].cb([
  { isIntersecting: true, target: __elements[3] },
  { isIntersecting: true, target: __elements[1] },
  { isIntersecting: false, target: __elements[0] }
]);`)
		if got := evalJS(t, vm, `__timers.map(function (t) { return t.ms; }).join(",")`); got != "1500,120,190" {
			t.Errorf("timers = %s", got)
		}
		if got := evalJS(t, vm, `__observers[0].observed.length`); got != "3" {
			t.Errorf("still observed = %s", got)
		}
		evalJS(t, vm, `__runTimers(120)`)
		if got := evalJS(t, vm, `__revealed()`); got != "c1" {
			t.Errorf("revealed at 120ms = %q", got)
		}
		evalJS(t, vm, `__runTimers(190)`)
		if got := evalJS(t, vm, `__revealed()`); got != "c1,c2" {
			t.Errorf("revealed at 190ms = %q", got)
		}
	})

	t.Run("none", func(t *testing.T) {
		vm := startPage(t, runtimeSite(common.RevealTypeNone), "")
		evalJS(t, vm, `__runTimers(60000)`)
		if got := evalJS(t, vm, `__revealed() + "|" + __observers.length + "|" + __timers.length`); got != "|0|0" {
			t.Errorf("reveal none = %s", got)
		}
		// mounting is unaffected
		if got := evalJS(t, vm, `JSON.stringify(__log)`); got != `["mount c1","mount c2"]` {
			t.Errorf("mounted = %s", got)
		}
	})
}
