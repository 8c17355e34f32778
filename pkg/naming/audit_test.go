package naming

import (
	"testing"

	"github.com/leapstack-labs/leapaudit/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAudit(t *testing.T) {
	tests := []struct {
		name          string
		category      core.Category
		identifier    string
		wantCompliant bool
		wantRule      string
	}{
		// Views
		{"vw prefix pascal case", core.CategoryView, "vwUsuarioProcesso", true, "VW01"},
		{"vw prefix with underscore", core.CategoryView, "vw_usuario_log", false, "VW02"},
		{"vm materialized view", core.CategoryView, "vmProcessoUsuario", true, "VW03"},
		{"vm prefix accepts underscore", core.CategoryView, "vm_processo", true, "VW03"},
		{"spelled out View prefix", core.CategoryView, "ViewUsuarios", false, "VW04"},
		{"ViewMat prefix", core.CategoryView, "ViewMatUsuario", false, "VW04"},
		{"uppercase VW", core.CategoryView, "VWUsuario", false, "VW04"},

		// Tables
		{"singular pascal case", core.CategoryTable, "Veiculo", true, "TB05"},
		{"tb prefix", core.CategoryTable, "tbVeiculo", false, "TB01"},
		{"snake case", core.CategoryTable, "tabela_veiculos", false, "TB02"},
		{"tb prefix wins over underscore", core.CategoryTable, "tb_veiculo", false, "TB01"},
		{"log table", core.CategoryTable, "LogParcelaDebito", true, "TB03"},
		{"log table plural is still accepted", core.CategoryTable, "LogParcelas", true, "TB03"},
		{"temp table", core.CategoryTable, "tmpRestricaoVeiculo", true, "TB03"},
		{"plural", core.CategoryTable, "Veiculos", false, "TB04"},
		{"ends in ss", core.CategoryTable, "Classificacaoss", true, "TB05"},
		{"ends in is", core.CategoryTable, "Pais", true, "TB05"},
		{"ends in us is flagged", core.CategoryTable, "Status", false, "TB04"},
		{"uppercase LOG prefix is not special", core.CategoryTable, "LOGParcelaDeb", true, "TB05"},
		{"proxy table", core.CategoryTable, "pxProtLaudoToxicologico", true, "TB05"},
		{"proxy table with underscore", core.CategoryTable, "PXProt_Laudotoxicologico", false, "TB02"},

		// Procedures
		{"batch prefix", core.CategoryProcedure, "BatchConsumoServicoWebS", true, "PR01"},
		{"batch prefix any suffix", core.CategoryProcedure, "BatchConsumoServicoWebMover", true, "PR01"},
		{"select suffix", core.CategoryProcedure, "VerificaAdvertenciaS", true, "PR02"},
		{"insert suffix", core.CategoryProcedure, "CadastraVeiculoI", true, "PR02"},
		{"report suffix", core.CategoryProcedure, "MultaR", true, "PR02"},
		{"lowercase a is not an operation code", core.CategoryProcedure, "CalculaMulta", false, "PR03"},
		{"infinitive verb", core.CategoryProcedure, "AtualizarDadosCliente", false, "PR03"},
		{"qualifier is not stripped", core.CategoryProcedure, "VerificaAdvertenciaS.scp", false, "PR03"},
		{"database qualifier", core.CategoryProcedure, "dbinfracao..SitInfracaoE.scp", false, "PR03"},
		{"uppercase SDS ends in S", core.CategoryProcedure, "PopulaVeiculoRoubadoSDS", true, "PR02"},
		{"empty identifier", core.CategoryProcedure, "", false, "PR03"},
		{"single space", core.CategoryProcedure, " ", false, "PR03"},

		// Keys
		{"pk prefix", core.CategoryPrimaryKey, "pkVeiculo", true, "PK01"},
		{"pk generic id", core.CategoryPrimaryKey, "id_veiculo", false, "PK02"},
		{"pk with underscore", core.CategoryPrimaryKey, "pk_veiculo", false, "PK02"},
		{"pk uppercase", core.CategoryPrimaryKey, "PKVeiculo", false, "PK02"},
		{"fk prefix", core.CategoryForeignKey, "fkVeiculoCategoria", true, "FK01"},
		{"fk uppercase with underscore", core.CategoryForeignKey, "FK_Carro", false, "FK02"},
		{"fk uppercase", core.CategoryForeignKey, "FKveiculo", false, "FK02"},
		{"fk with underscore", core.CategoryForeignKey, "fk_veiculo", true, "FK01"},

		// Default
		{"unknown category", core.CategoryUnknown, "anything", true, "DF01"},
		{"unknown category empty identifier", core.CategoryUnknown, "", true, "DF01"},
		{"out of range category", core.Category(99), "tbVeiculo", true, "DF01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Audit(tt.category, tt.identifier)

			assert.Equal(t, tt.wantCompliant, v.Compliant, "explanation: %s", v.Explanation)
			assert.Equal(t, tt.wantRule, v.RuleID)
			assert.NotEmpty(t, v.Explanation)
		})
	}
}

func TestAudit_OperationCodeExplanation(t *testing.T) {
	tests := []struct {
		identifier string
		want       string
	}{
		{"VerificaAdvertenciaS", "'S' (Select)"},
		{"VeiculoI", "'I' (Insert)"},
		{"SitInfracaoE", "'E' (Erase)"},
		{"ContaA", "'A' (Alter)"},
		{"MultaR", "'R' (Report)"},
	}

	for _, tt := range tests {
		t.Run(tt.identifier, func(t *testing.T) {
			v := Audit(core.CategoryProcedure, tt.identifier)
			require.True(t, v.Compliant)
			assert.Contains(t, v.Explanation, tt.want)
		})
	}
}

func TestAuditLabel(t *testing.T) {
	tests := []struct {
		label    string
		wantRule string
	}{
		{"View", "VW04"},
		{"view", "VW04"},
		{"Tabela", "TB05"},
		{"Table", "TB05"},
		{"Procedure", "PR03"},
		{"PK", "PK02"},
		{"pk", "PK02"},
		{"PrimaryKey", "PK02"},
		{"FK", "FK02"},
		{"fk", "FK02"},
		{"ForeignKey", "FK02"},
		{"VIEW", "VW04"},
		{"tABELA", "TB05"},
		{"Pk", "PK02"},
		{"procedure", "PR03"},
		{"Trigger", "DF01"},
		{" View", "DF01"},
		{"", "DF01"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			v := AuditLabel(tt.label, "Cliente")
			assert.Equal(t, tt.wantRule, v.RuleID)
		})
	}
}

// The table layout used by the seeding job must pass its own audit.
func TestAudit_StoreSchemaNamesAreCompliant(t *testing.T) {
	assert.True(t, Audit(core.CategoryTable, "ExemploPratico").Compliant)
	assert.True(t, Audit(core.CategoryPrimaryKey, "pkExemploPratico").Compliant)
}

func TestRules(t *testing.T) {
	rules := Rules()
	require.NotEmpty(t, rules)

	seen := make(map[string]bool)
	for _, r := range rules {
		assert.False(t, seen[r.ID], "duplicate rule ID %s", r.ID)
		seen[r.ID] = true
		assert.NotEmpty(t, r.Description, "rule %s has no description", r.ID)
		assert.Contains(t, []string{"compliant", "non_compliant"}, r.Outcome)
	}
	assert.Len(t, rules, 17)
}

func TestRulesFor_Order(t *testing.T) {
	rules := RulesFor(core.CategoryTable)
	require.Len(t, rules, 5)

	ids := make([]string, len(rules))
	for i, r := range rules {
		ids[i] = r.ID
		assert.Equal(t, i+1, r.Order)
		assert.Equal(t, "Table", r.Category)
	}
	assert.Equal(t, []string{"TB01", "TB02", "TB03", "TB04", "TB05"}, ids)
}

func TestRulesFor_LastRuleIsCatchAll(t *testing.T) {
	for _, c := range core.Categories() {
		list := decisionList(c)
		require.NotEmpty(t, list, c.String())
		last := list[len(list)-1]
		assert.True(t, last.Match(""), "%s: last rule %s must match everything", c, last.ID)
		assert.True(t, last.Match("x_Y.z"), "%s: last rule %s must match everything", c, last.ID)
	}
}

func TestGetByID(t *testing.T) {
	info, ok := GetByID("PR02")
	require.True(t, ok)
	assert.Equal(t, "Procedure", info.Category)
	assert.Equal(t, 2, info.Order)
	assert.Equal(t, "compliant", info.Outcome)

	_, ok = GetByID("XX99")
	assert.False(t, ok)
}
