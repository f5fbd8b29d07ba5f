package model

import (
	"errors"
	"testing"

	"pgregory.net/rapid"
)

var (
	nameGen   = rapid.StringMatching(`[a-z][a-z0-9_]{0,11}`)
	modeGen   = rapid.SampledFrom([]Mode{ModeClassification, ModeRegression, ModeCensoredRegression, "quantile regression"})
	engineGen = rapid.SampledFrom([]string{"lm", "glmnet", "ranger", "xgboost", "survival"})
)

func TestProperty_RegisterModelOnce(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		reg := NewRegistry()
		name := nameGen.Draw(t, "model")

		if err := reg.RegisterModel(name); err != nil {
			t.Fatalf("first registration of %q failed: %v", name, err)
		}
		if err := reg.RegisterModel(name); !errors.Is(err, ErrAlreadyExists) {
			t.Fatalf("second registration of %q: got %v, want ErrAlreadyExists", name, err)
		}
	})
}

func TestProperty_EngineIdempotence(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		reg := NewRegistry()
		_ = reg.RegisterModel("m")

		registered := rapid.SliceOfDistinct(modeGen, func(m Mode) Mode { return m }).Draw(t, "modes")
		for _, mode := range registered {
			_ = reg.RegisterMode("m", mode)
		}

		mode := modeGen.Draw(t, "mode")
		engine := engineGen.Draw(t, "engine")
		repeats := rapid.IntRange(1, 5).Draw(t, "repeats")

		legal := false
		for _, m := range registered {
			legal = legal || m == mode
		}

		for i := 0; i < repeats; i++ {
			err := reg.RegisterEngine("m", mode, engine)
			if legal && err != nil {
				t.Fatalf("RegisterEngine(%q, %q): %v", mode, engine, err)
			}
			if !legal && !errors.Is(err, ErrIncompatible) {
				t.Fatalf("RegisterEngine(%q, %q) with modes %v: got %v, want ErrIncompatible", mode, engine, registered, err)
			}
		}

		engines, _ := reg.Engines("m")
		count := 0
		for _, row := range engines {
			if row == (EngineRow{Engine: engine, Mode: mode}) {
				count++
			}
		}
		if legal && count != 1 {
			t.Fatalf("engine row stored %d times, want 1", count)
		}
		if !legal && count != 0 {
			t.Fatalf("illegal engine row stored %d times", count)
		}
	})
}

func TestProperty_FitRequiresEngine(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		reg := NewRegistry()
		_ = reg.RegisterModel("m")
		mode := modeGen.Draw(t, "mode")
		_ = reg.RegisterMode("m", mode)
		engine := engineGen.Draw(t, "engine")

		fit := FitModule{Interface: InterfaceMatrix, Func: Call{Func: "fit"}}
		if err := reg.RegisterFit("m", mode, engine, fit); !errors.Is(err, ErrNotRegistered) {
			t.Fatalf("fit before engine: got %v, want ErrNotRegistered", err)
		}

		_ = reg.RegisterEngine("m", mode, engine)
		repeats := rapid.IntRange(1, 4).Draw(t, "repeats")
		for i := 0; i < repeats; i++ {
			if err := reg.RegisterFit("m", mode, engine, fit); err != nil {
				t.Fatalf("identical fit #%d: %v", i+1, err)
			}
		}
		if fits, _ := reg.Fits("m"); len(fits) != 1 {
			t.Fatalf("got %d fit rows, want 1", len(fits))
		}

		other := fit
		other.Interface = InterfaceFormula
		if err := reg.RegisterFit("m", mode, engine, other); !errors.Is(err, ErrConflict) {
			t.Fatalf("different fit: got %v, want ErrConflict", err)
		}
	})
}

func TestProperty_PredictByTypeFilters(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		reg := NewRegistry()
		_ = reg.RegisterModel("m")
		_ = reg.RegisterMode("m", ModeRegression)
		_ = reg.RegisterEngine("m", ModeRegression, "lm")

		types := rapid.SliceOfNDistinct(rapid.SampledFrom(PredictTypes), 1, len(PredictTypes), func(p PredictType) PredictType { return p }).Draw(t, "types")
		for _, typ := range types {
			if err := reg.RegisterPredict("m", ModeRegression, "lm", typ, PredictModule{Func: Call{Func: "predict"}}); err != nil {
				t.Fatalf("RegisterPredict(%q): %v", typ, err)
			}
		}

		query := rapid.SampledFrom(PredictTypes).Draw(t, "query")
		rows, err := reg.PredictByType("m", query)

		present := false
		for _, typ := range types {
			present = present || typ == query
		}
		if !present {
			if !errors.Is(err, ErrNoPredictType) || errors.Is(err, ErrNoPredict) {
				t.Fatalf("absent type %q: got %v, want only ErrNoPredictType", query, err)
			}
			return
		}
		if err != nil {
			t.Fatalf("PredictByType(%q): %v", query, err)
		}
		for _, row := range rows {
			if row.Type != query {
				t.Fatalf("PredictByType(%q) returned a %q row", query, row.Type)
			}
		}
	})
}

func TestProperty_DerivedEncodings(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		reg := NewRegistry()
		_ = reg.RegisterModel("m")

		pairs := rapid.IntRange(0, 6).Draw(t, "pairs")
		for i := 0; i < pairs; i++ {
			mode := modeGen.Draw(t, "mode")
			_ = reg.RegisterMode("m", mode)
			_ = reg.RegisterEngine("m", mode, engineGen.Draw(t, "engine"))
		}

		engines, _ := reg.Engines("m")
		encs, err := reg.Encodings("m")
		if err != nil {
			t.Fatal(err)
		}
		if !encs.Derived || len(encs.Rows) != len(engines) {
			t.Fatalf("got %d derived=%v rows for %d engines", len(encs.Rows), encs.Derived, len(engines))
		}
		for i, row := range encs.Rows {
			if row.Engine != engines[i].Engine || row.Mode != engines[i].Mode || row.Encoding != DefaultEncoding {
				t.Fatalf("row %d = %+v, want default for %+v", i, row, engines[i])
			}
		}
	})
}
