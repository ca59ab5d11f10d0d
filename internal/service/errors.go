package service

import "errors"

// Sentinel errors shared across services. Handlers map these to HTTP statuses
// with errors.Is; messages stay in Spanish because they are shown verbatim in
// the UI.
var (
	// ErrNoEncontrado: the referenced entity does not exist.
	ErrNoEncontrado = errors.New("recurso no encontrado")

	// ErrUnidadesIncompatibles: conversion requested between units of
	// different tipo (e.g. masa → volumen).
	ErrUnidadesIncompatibles = errors.New("unidades de distinto tipo no son convertibles")

	// ErrSinRutaConversion: no direct or transitive conversion path exists.
	ErrSinRutaConversion = errors.New("no existe conversion entre las unidades")

	// ErrIntegridadDatos: a dangling reference surfaced mid-aggregation.
	// The report build aborts — a silently short shopping list is worse than
	// no list.
	ErrIntegridadDatos = errors.New("inconsistencia de datos detectada")

	// ErrTransicionEstado: the requested estado change is not permitted by
	// the pedido lifecycle.
	ErrTransicionEstado = errors.New("transicion de estado no permitida")

	// ErrPedidoYaCancelado: cancel requested on an already-cancelled pedido.
	ErrPedidoYaCancelado = errors.New("el pedido ya fue cancelado")

	// ErrPedidoInmutable: content edits on an entregado or cancelado pedido.
	ErrPedidoInmutable = errors.New("el pedido ya no admite modificaciones")

	// ErrFechaCerrada: pedido targets a fecha that is closed or past its
	// fecha límite.
	ErrFechaCerrada = errors.New("la fecha de produccion no acepta pedidos")

	// ErrConflictoVersion: optimistic-concurrency check failed; the pedido
	// was modified by someone else since it was read.
	ErrConflictoVersion = errors.New("el pedido fue modificado por otro usuario")

	// ErrEnUso: deletion blocked because other records reference the entity.
	ErrEnUso = errors.New("el recurso esta referenciado y no puede eliminarse")

	// ErrValidacion: input rejected before persistence. Handlers map it to
	// 400; errors NOT carrying a sentinel are treated as internal (500) and
	// their message is never sent to the client.
	ErrValidacion = errors.New("entrada invalida")
)

// validacionError carries a UI-facing message while still matching
// ErrValidacion under errors.Is.
type validacionError struct{ msg string }

func (e *validacionError) Error() string        { return e.msg }
func (e *validacionError) Is(target error) bool { return target == ErrValidacion }

// Validacion builds an input-rejection error shown verbatim in the UI.
func Validacion(msg string) error { return &validacionError{msg: msg} }
