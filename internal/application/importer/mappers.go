package importer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/merchmaroc/merchandising-api/internal/application/dto"
	"github.com/merchmaroc/merchandising-api/internal/domain/catalog"
	"github.com/merchmaroc/merchandising-api/internal/domain/entity"
)

// Password asignado a los usuarios importados sin columna password.
const defaultImportPassword = "password123"

// userColumns tabla declarativa de alias por campo (header ya en minúsculas).
var userColumns = map[string][]string{
	"name":     {"name"},
	"email":    {"email"},
	"password": {"password"},
	"role":     {"role"},
	"region":   {"region"},
	"manager":  {"managerid", "manager_id", "sfosid", "sfos_id"},
}

var storeColumns = map[string][]string{
	"name":      {"name"},
	"type":      {"type"},
	"city":      {"city"},
	"latitude":  {"latitude", "lat"},
	"longitude": {"longitude", "lng", "lon"},
	"address":   {"address"},
}

var assignmentColumns = map[string][]string{
	"date":      {"date"},
	"userEmail": {"useremail", "user_email", "email"},
	"storeName": {"storename", "store_name", "store"},
	"tasks":     {"tasks"},
}

var productColumns = map[string][]string{
	"name":        {"name"},
	"sku":         {"sku"},
	"category":    {"category", "type"},
	"subCategory": {"subcategory", "sub_category"},
	"imageUrl":    {"imageurl", "image_url"},
	"description": {"description"},
	"price":       {"price"},
	"stock":       {"stock"},
}

// resolveColumns evalúa la tabla de alias una sola vez contra el header.
func resolveColumns(header []string, table map[string][]string) map[string]int {
	out := make(map[string]int, len(table))
	for name, aliases := range table {
		out[name] = columnIndex(header, aliases...)
	}
	return out
}

// mapUsers mapea filas de CSV de usuarios a requests de creación. Filas sin
// nombre o email se rechazan; roles desconocidos caen a SFOS y el password
// ausente usa el valor por defecto.
func mapUsers(header []string, rows [][]string) ([]dto.CreateUserRequest, []dto.RejectedRow) {
	cols := resolveColumns(header, userColumns)
	var (
		accepted []dto.CreateUserRequest
		rejected []dto.RejectedRow
	)
	for i, row := range rows {
		line := i + 2 // el header es la línea 1
		name := field(row, cols["name"])
		email := field(row, cols["email"])
		if name == "" || email == "" {
			rejected = append(rejected, dto.RejectedRow{Line: line, Reason: "nombre o email ausente"})
			continue
		}
		password := field(row, cols["password"])
		if password == "" {
			password = defaultImportPassword
		}
		role := strings.ToUpper(field(row, cols["role"]))
		switch role {
		case entity.RolePromoter, entity.RoleSFOS, entity.RoleSupervisor:
		default:
			role = entity.RoleSFOS
		}
		req := dto.CreateUserRequest{
			Name:     name,
			Email:    email,
			Password: password,
			Role:     role,
			Region:   field(row, cols["region"]),
		}
		if raw := field(row, cols["manager"]); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				rejected = append(rejected, dto.RejectedRow{Line: line, Reason: fmt.Sprintf("managerId inválido: %q", raw)})
				continue
			}
			req.SfosID = &id
		}
		accepted = append(accepted, req)
	}
	return accepted, rejected
}

// mapStores mapea filas de CSV de tiendas. Nombre, tipo, ciudad y coordenadas
// son obligatorios; el tipo se normaliza a mayúsculas.
func mapStores(header []string, rows [][]string) ([]dto.StoreRequest, []dto.RejectedRow) {
	cols := resolveColumns(header, storeColumns)
	var (
		accepted []dto.StoreRequest
		rejected []dto.RejectedRow
	)
	for i, row := range rows {
		line := i + 2
		name := field(row, cols["name"])
		storeType := field(row, cols["type"])
		city := field(row, cols["city"])
		latRaw := field(row, cols["latitude"])
		lngRaw := field(row, cols["longitude"])
		if name == "" || storeType == "" || city == "" || latRaw == "" || lngRaw == "" {
			rejected = append(rejected, dto.RejectedRow{Line: line, Reason: "campo obligatorio ausente"})
			continue
		}
		lat, err := strconv.ParseFloat(latRaw, 64)
		if err != nil {
			rejected = append(rejected, dto.RejectedRow{Line: line, Reason: fmt.Sprintf("latitud inválida: %q", latRaw)})
			continue
		}
		lng, err := strconv.ParseFloat(lngRaw, 64)
		if err != nil {
			rejected = append(rejected, dto.RejectedRow{Line: line, Reason: fmt.Sprintf("longitud inválida: %q", lngRaw)})
			continue
		}
		accepted = append(accepted, dto.StoreRequest{
			Name:      name,
			Type:      strings.ToUpper(storeType),
			City:      city,
			Latitude:  &lat,
			Longitude: &lng,
			Address:   field(row, cols["address"]),
		})
	}
	return accepted, rejected
}

// mapAssignments mapea filas de CSV de asignaciones. Las referencias se
// resuelven fila a fila (usuario por email, tienda por nombre) y fallan
// cerrado: una referencia irresoluble rechaza la fila, no el lote.
func mapAssignments(
	header []string,
	rows [][]string,
	resolveUser func(email string) (int64, bool),
	resolveStore func(name string) (int64, bool),
) ([]dto.AssignmentCreateRequest, []dto.RejectedRow) {
	cols := resolveColumns(header, assignmentColumns)
	var (
		accepted []dto.AssignmentCreateRequest
		rejected []dto.RejectedRow
	)
	for i, row := range rows {
		line := i + 2
		date := field(row, cols["date"])
		email := field(row, cols["userEmail"])
		storeName := field(row, cols["storeName"])
		if date == "" || email == "" || storeName == "" {
			rejected = append(rejected, dto.RejectedRow{Line: line, Reason: "fecha, email o magasin ausente"})
			continue
		}
		userID, ok := resolveUser(email)
		if !ok {
			rejected = append(rejected, dto.RejectedRow{Line: line, Reason: fmt.Sprintf("usuario no encontrado: %s", email)})
			continue
		}
		storeID, ok := resolveStore(storeName)
		if !ok {
			rejected = append(rejected, dto.RejectedRow{Line: line, Reason: fmt.Sprintf("tienda no encontrada: %s", storeName)})
			continue
		}
		var tasks []dto.TaskItemCreateRequest
		for _, desc := range strings.Split(field(row, cols["tasks"]), ";") {
			desc = strings.TrimSpace(desc)
			if desc == "" {
				continue
			}
			tasks = append(tasks, dto.TaskItemCreateRequest{Description: desc, Status: entity.TaskTodo})
		}
		accepted = append(accepted, dto.AssignmentCreateRequest{
			Date:    date,
			UserID:  userID,
			StoreID: storeID,
			Tasks:   tasks,
		})
	}
	return accepted, rejected
}

// mapProducts mapea filas de CSV de productos. La categoría se normaliza con
// la taxonomía (WHITE/BROWN por contención, fallback WHITE_GOODS); nombre,
// SKU y subcategoría son obligatorios.
func mapProducts(header []string, rows [][]string) ([]dto.CreateProductRequest, []dto.RejectedRow) {
	cols := resolveColumns(header, productColumns)
	var (
		accepted []dto.CreateProductRequest
		rejected []dto.RejectedRow
	)
	for i, row := range rows {
		line := i + 2
		name := field(row, cols["name"])
		sku := field(row, cols["sku"])
		subCategory := field(row, cols["subCategory"])
		if name == "" || sku == "" || subCategory == "" {
			rejected = append(rejected, dto.RejectedRow{Line: line, Reason: "nombre, SKU o subcategoría ausente"})
			continue
		}
		category := catalog.NormalizeCategory(field(row, cols["category"]))
		if category == "" {
			category = catalog.WhiteGoods
		}
		req := dto.CreateProductRequest{
			Name:        name,
			SKU:         sku,
			Category:    category,
			SubCategory: subCategory,
			ImageURL:    field(row, cols["imageUrl"]),
			Description: field(row, cols["description"]),
		}
		if raw := field(row, cols["price"]); raw != "" {
			price, err := decimal.NewFromString(raw)
			if err != nil {
				rejected = append(rejected, dto.RejectedRow{Line: line, Reason: fmt.Sprintf("precio inválido: %q", raw)})
				continue
			}
			req.Price = price
		}
		if raw := field(row, cols["stock"]); raw != "" {
			stock, err := strconv.Atoi(raw)
			if err != nil {
				rejected = append(rejected, dto.RejectedRow{Line: line, Reason: fmt.Sprintf("stock inválido: %q", raw)})
				continue
			}
			req.Stock = stock
		}
		accepted = append(accepted, req)
	}
	return accepted, rejected
}
