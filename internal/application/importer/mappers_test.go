package importer

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merchmaroc/merchandising-api/internal/domain/entity"
)

func table(t *testing.T, csv string) ([]string, [][]string) {
	t.Helper()
	header, rows, err := readTable(strings.NewReader(csv))
	require.NoError(t, err)
	return header, rows
}

// ══════════════════════════════════════════════════════════════
// mapUsers
// ══════════════════════════════════════════════════════════════

func TestMapUsers_PasswordYRolPorDefecto(t *testing.T) {
	header, rows := table(t, "name,email\nAnass El Amrani,anass.promoter@samsung.ma\n")

	accepted, rejected := mapUsers(header, rows)
	require.Len(t, accepted, 1)
	assert.Empty(t, rejected)
	assert.Equal(t, defaultImportPassword, accepted[0].Password)
	assert.Equal(t, entity.RoleSFOS, accepted[0].Role)
}

func TestMapUsers_RolDesconocidoCaeASFOS(t *testing.T) {
	header, rows := table(t, "name,email,role\nAnass,anass@samsung.ma,ADMIN\n")

	accepted, _ := mapUsers(header, rows)
	require.Len(t, accepted, 1)
	assert.Equal(t, entity.RoleSFOS, accepted[0].Role)
}

func TestMapUsers_RolEnMinusculasSeNormaliza(t *testing.T) {
	header, rows := table(t, "name,email,role\nAnass,anass@samsung.ma,promoter\n")

	accepted, _ := mapUsers(header, rows)
	require.Len(t, accepted, 1)
	assert.Equal(t, entity.RolePromoter, accepted[0].Role)
}

func TestMapUsers_AliasDeManager(t *testing.T) {
	for _, alias := range []string{"managerId", "manager_id", "sfosId", "sfos_id"} {
		header, rows := table(t, "name,email,"+alias+"\nAnass,anass@samsung.ma,7\n")
		accepted, rejected := mapUsers(header, rows)
		require.Len(t, accepted, 1, "alias %s", alias)
		require.Empty(t, rejected, "alias %s", alias)
		require.NotNil(t, accepted[0].SfosID)
		assert.Equal(t, int64(7), *accepted[0].SfosID)
	}
}

func TestMapUsers_RechazaFilasIncompletas(t *testing.T) {
	header, rows := table(t, "name,email\nAnass,anass@samsung.ma\n,sin.nombre@samsung.ma\nSin Email,\n")

	accepted, rejected := mapUsers(header, rows)
	assert.Len(t, accepted, 1)
	require.Len(t, rejected, 2)
	// El header es la línea 1.
	assert.Equal(t, 3, rejected[0].Line)
	assert.Equal(t, 4, rejected[1].Line)
}

func TestMapUsers_ManagerNoNumericoRechazaLaFila(t *testing.T) {
	header, rows := table(t, "name,email,managerid\nAnass,anass@samsung.ma,karim\n")

	accepted, rejected := mapUsers(header, rows)
	assert.Empty(t, accepted)
	require.Len(t, rejected, 1)
	assert.Contains(t, rejected[0].Reason, "managerId inválido")
}

// ══════════════════════════════════════════════════════════════
// mapStores
// ══════════════════════════════════════════════════════════════

func TestMapStores_AliasDeCoordenadas(t *testing.T) {
	header, rows := table(t, "name,type,city,lat,lng\nElectroPlanet,or,Casablanca,33.5731,-7.5898\n")

	accepted, rejected := mapStores(header, rows)
	require.Len(t, accepted, 1)
	assert.Empty(t, rejected)
	assert.Equal(t, "OR", accepted[0].Type)
	require.NotNil(t, accepted[0].Latitude)
	assert.InDelta(t, 33.5731, *accepted[0].Latitude, 0.0001)
}

func TestMapStores_RechazaCamposObligatoriosAusentes(t *testing.T) {
	header, rows := table(t, "name,type,city,latitude,longitude\nElectroPlanet,OR,,33.5,-7.6\n")

	accepted, rejected := mapStores(header, rows)
	assert.Empty(t, accepted)
	require.Len(t, rejected, 1)
	assert.Equal(t, 2, rejected[0].Line)
}

func TestMapStores_CoordenadaNoNumericaRechazaLaFila(t *testing.T) {
	header, rows := table(t, "name,type,city,latitude,longitude\nElectroPlanet,OR,Casablanca,norte,-7.6\n")

	accepted, rejected := mapStores(header, rows)
	assert.Empty(t, accepted)
	require.Len(t, rejected, 1)
	assert.Contains(t, rejected[0].Reason, "latitud inválida")
}

// ══════════════════════════════════════════════════════════════
// mapAssignments
// ══════════════════════════════════════════════════════════════

func resolvers() (func(string) (int64, bool), func(string) (int64, bool)) {
	users := map[string]int64{"anass.promoter@samsung.ma": 3}
	stores := map[string]int64{"ElectroPlanet Marjane Californie": 9}
	return func(email string) (int64, bool) { id, ok := users[email]; return id, ok },
		func(name string) (int64, bool) { id, ok := stores[name]; return id, ok }
}

func TestMapAssignments_ResuelveReferenciasYDivideTareas(t *testing.T) {
	resolveUser, resolveStore := resolvers()
	header, rows := table(t, "date,userEmail,storeName,tasks\n"+
		"2026-02-01,anass.promoter@samsung.ma,ElectroPlanet Marjane Californie,Vérifier le linéaire; Photo du rayon ;\n")

	accepted, rejected := mapAssignments(header, rows, resolveUser, resolveStore)
	require.Len(t, accepted, 1)
	assert.Empty(t, rejected)

	a := accepted[0]
	assert.Equal(t, "2026-02-01", a.Date)
	assert.Equal(t, int64(3), a.UserID)
	assert.Equal(t, int64(9), a.StoreID)
	require.Len(t, a.Tasks, 2)
	assert.Equal(t, "Vérifier le linéaire", a.Tasks[0].Description)
	assert.Equal(t, entity.TaskTodo, a.Tasks[0].Status)
	assert.Equal(t, "Photo du rayon", a.Tasks[1].Description)
}

func TestMapAssignments_AliasEmailYStore(t *testing.T) {
	resolveUser, resolveStore := resolvers()
	header, rows := table(t, "date,email,store\n"+
		"2026-02-01,anass.promoter@samsung.ma,ElectroPlanet Marjane Californie\n")

	accepted, rejected := mapAssignments(header, rows, resolveUser, resolveStore)
	require.Len(t, accepted, 1)
	assert.Empty(t, rejected)
	assert.Empty(t, accepted[0].Tasks)
}

func TestMapAssignments_ReferenciaIrresolubleRechazaSoloLaFila(t *testing.T) {
	resolveUser, resolveStore := resolvers()
	header, rows := table(t, "date,userEmail,storeName\n"+
		"2026-02-01,desconocido@samsung.ma,ElectroPlanet Marjane Californie\n"+
		"2026-02-01,anass.promoter@samsung.ma,Tienda Fantasma\n"+
		"2026-02-01,anass.promoter@samsung.ma,ElectroPlanet Marjane Californie\n")

	accepted, rejected := mapAssignments(header, rows, resolveUser, resolveStore)
	assert.Len(t, accepted, 1)
	require.Len(t, rejected, 2)
	assert.Contains(t, rejected[0].Reason, "usuario no encontrado")
	assert.Contains(t, rejected[1].Reason, "tienda no encontrada")
	assert.Equal(t, 2, rejected[0].Line)
	assert.Equal(t, 3, rejected[1].Line)
}

func TestMapAssignments_RechazaFilasIncompletas(t *testing.T) {
	resolveUser, resolveStore := resolvers()
	header, rows := table(t, "date,userEmail,storeName\n"+
		",anass.promoter@samsung.ma,ElectroPlanet Marjane Californie\n")

	accepted, rejected := mapAssignments(header, rows, resolveUser, resolveStore)
	assert.Empty(t, accepted)
	require.Len(t, rejected, 1)
	assert.Contains(t, rejected[0].Reason, "ausente")
}

// ══════════════════════════════════════════════════════════════
// mapProducts
// ══════════════════════════════════════════════════════════════

func TestMapProducts_NormalizaCategoriaConFallback(t *testing.T) {
	header, rows := table(t, "name,sku,category,subCategory,price,stock\n"+
		"Réfrigérateur RT38,RT38K,White Goods,Réfrigérateur,7990.00,12\n"+
		"QLED 55,QE55Q80,Brown Goods,Téléviseur,11990,3\n"+
		"Lave-linge WW90,WW90T,,Lave-linge,,\n")

	accepted, rejected := mapProducts(header, rows)
	require.Len(t, accepted, 3)
	assert.Empty(t, rejected)
	assert.Equal(t, "WHITE_GOODS", accepted[0].Category)
	assert.Equal(t, "BROWN_GOODS", accepted[1].Category)
	// Sin categoría reconocible cae a WHITE_GOODS.
	assert.Equal(t, "WHITE_GOODS", accepted[2].Category)
	assert.True(t, accepted[0].Price.Equal(decimal.RequireFromString("7990.00")))
	assert.Equal(t, 12, accepted[0].Stock)
}

func TestMapProducts_AliasTypeParaCategoria(t *testing.T) {
	header, rows := table(t, "name,sku,type,subCategory\nQLED 55,QE55Q80,brown,Téléviseur\n")

	accepted, _ := mapProducts(header, rows)
	require.Len(t, accepted, 1)
	assert.Equal(t, "BROWN_GOODS", accepted[0].Category)
}

func TestMapProducts_RechazaFilasIncompletas(t *testing.T) {
	header, rows := table(t, "name,sku,subCategory\nSin SKU,,Réfrigérateur\n,RT38K,Réfrigérateur\nRT38,RT38K,\n")

	accepted, rejected := mapProducts(header, rows)
	assert.Empty(t, accepted)
	assert.Len(t, rejected, 3)
}

func TestMapProducts_PrecioInvalidoRechazaLaFila(t *testing.T) {
	header, rows := table(t, "name,sku,subCategory,price\nRT38,RT38K,Réfrigérateur,caro\n")

	accepted, rejected := mapProducts(header, rows)
	assert.Empty(t, accepted)
	require.Len(t, rejected, 1)
	assert.Contains(t, rejected[0].Reason, "precio inválido")
}
