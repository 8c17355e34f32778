package naming

import (
	"sync"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/leapstack-labs/leapaudit/pkg/core"
)

var ruleAlphabet = []rune("vwmtbpkfsSIEARLog_.")

// identifierGen mixes arbitrary strings with names built from the characters
// the rules actually look at, so prefix and suffix branches get exercised.
func identifierGen() gopter.Gen {
	return gen.OneGenOf(
		gen.AnyString(),
		gen.AlphaString(),
		gen.SliceOf(gen.IntRange(0, len(ruleAlphabet)-1).Map(func(i int) rune { return ruleAlphabet[i] })).
			Map(func(rs []rune) string { return string(rs) }),
	)
}

func categoryGen() gopter.Gen {
	return gen.IntRange(-1, 7).Map(func(i int) core.Category { return core.Category(i) })
}

func TestAuditIsTotalProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("every input yields a verdict from a known rule", prop.ForAll(
		func(c core.Category, identifier string) bool {
			v := Audit(c, identifier)
			if v.Explanation == "" {
				return false
			}
			_, ok := GetByID(v.RuleID)
			return ok
		},
		categoryGen(),
		identifierGen(),
	))

	properties.TestingRun(t)
}

func TestAuditIsDeterministicProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("repeated audits return identical verdicts", prop.ForAll(
		func(c core.Category, identifier string) bool {
			return Audit(c, identifier) == Audit(c, identifier)
		},
		categoryGen(),
		identifierGen(),
	))

	properties.Property("unknown categories are always compliant", prop.ForAll(
		func(identifier string) bool {
			return Audit(core.CategoryUnknown, identifier).Compliant
		},
		identifierGen(),
	))

	properties.Property("underscored table names never pass", prop.ForAll(
		func(prefix, suffix string) bool {
			return !Audit(core.CategoryTable, prefix+"_"+suffix).Compliant
		},
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

func TestAuditConcurrentUse(t *testing.T) {
	inputs := []struct {
		c  core.Category
		id string
	}{
		{core.CategoryView, "vwUsuarioProcesso"},
		{core.CategoryTable, "Veiculos"},
		{core.CategoryProcedure, ""},
		{core.CategoryPrimaryKey, "pkVeiculo"},
		{core.CategoryForeignKey, "FK_Carro"},
	}
	want := make([]core.Verdict, len(inputs))
	for i, in := range inputs {
		want[i] = Audit(in.c, in.id)
	}

	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for w := 0; w < 16; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < 100; n++ {
				for i, in := range inputs {
					if Audit(in.c, in.id) != want[i] {
						errs <- in.id
						return
					}
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for id := range errs {
		t.Errorf("verdict for %q changed under concurrent use", id)
	}
}
