package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrStockAlreadyExists = errors.New("ya existe stock para el producto en el almacén; use un movimiento de entrada")
	ErrWarehouseInactive  = errors.New("el almacén no está activo")
	ErrWarehouseNotEmpty  = errors.New("el almacén tiene stock registrado")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrCatalogUnavailable = errors.New("el servicio de catálogo no responde; operación cancelada")
	ErrExternalService    = errors.New("respuesta inesperada del servicio externo")
)
