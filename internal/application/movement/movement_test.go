package movement_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/movement"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	solicitanteID = "00000000-0000-0000-0000-000000000001"
	aprobadorID   = "00000000-0000-0000-0000-000000000002"
)

type fixture struct {
	store     *memStore
	txRunner  *memTxRunner
	apply     *movement.ApplyUseCase
	request   *movement.RequestWithdrawalUseCase
	decide    *movement.DecideUseCase
	signature *movement.AttachSignatureUseCase
}

func newFixture() *fixture {
	store := newMemStore()
	txRunner := &memTxRunner{store: store}
	return &fixture{
		store:     store,
		txRunner:  txRunner,
		apply:     movement.NewApplyUseCase(txRunner),
		request:   movement.NewRequestWithdrawalUseCase(&memMovementRepo{store: store}, &memMaterialRepo{store: store}),
		decide:    movement.NewDecideUseCase(txRunner),
		signature: movement.NewAttachSignatureUseCase(txRunner),
	}
}

// seedMaterial crea un material con el stock indicado y devuelve su ID.
func (f *fixture) seedMaterial(t *testing.T, qty string) string {
	t.Helper()
	id := uuid.New().String()
	f.store.materials[id] = &entity.Material{
		ID:              id,
		Code:            "MAT-" + id[:8],
		Name:            "Material de prueba",
		Unit:            "un",
		MinQuantity:     decimal.NewFromInt(5),
		CurrentQuantity: decimal.RequireFromString(qty),
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	return id
}

func (f *fixture) quantityOf(t *testing.T, materialID string) decimal.Decimal {
	t.Helper()
	mat, ok := f.store.materials[materialID]
	require.True(t, ok, "el material sembrado debe existir")
	return mat.CurrentQuantity
}

// pendingWithdrawal crea una solicitud PENDING de la cantidad indicada.
func (f *fixture) pendingWithdrawal(t *testing.T, materialID, qty string) *entity.Movement {
	t.Helper()
	mov, err := f.request.Request(context.Background(), movement.WithdrawalInput{
		MaterialID: materialID,
		UserID:     solicitanteID,
		Quantity:   decimal.RequireFromString(qty),
	})
	require.NoError(t, err)
	return mov
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos directos (ApplyDirect)
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyDirect_EntradaActualizaStockYLibro(t *testing.T) {
	f := newFixture()
	matID := f.seedMaterial(t, "10")

	mov, err := f.apply.ApplyDirect(context.Background(), movement.ApplyInput{
		MaterialID: matID,
		UserID:     aprobadorID,
		Type:       entity.MovementTypeIN,
		Quantity:   decimal.NewFromInt(7),
		Note:       "compra semanal",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.MovementStatusApproved, mov.Status,
		"el movimiento directo nace aprobado")
	assert.Equal(t, aprobadorID, mov.ApprovedBy, "el actor queda como aprobador")
	assert.True(t, mov.QuantityBefore.Equal(decimal.NewFromInt(10)))
	assert.True(t, mov.QuantityAfter.Equal(decimal.NewFromInt(17)))
	assert.True(t, f.quantityOf(t, matID).Equal(decimal.NewFromInt(17)),
		"el stock debe reflejar la entrada")

	guardado, ok := f.store.movements[mov.ID]
	require.True(t, ok, "el movimiento debe quedar en el libro")
	assert.True(t, guardado.QuantityAfter.Equal(decimal.NewFromInt(17)))
}

func TestApplyDirect_AjusteEsAditivo(t *testing.T) {
	f := newFixture()
	matID := f.seedMaterial(t, "3")

	mov, err := f.apply.ApplyDirect(context.Background(), movement.ApplyInput{
		MaterialID: matID,
		UserID:     aprobadorID,
		Type:       entity.MovementTypeADJUSTMENT,
		Quantity:   decimal.NewFromInt(2),
	})
	require.NoError(t, err)
	assert.True(t, mov.QuantityAfter.Equal(decimal.NewFromInt(5)))
	assert.True(t, f.quantityOf(t, matID).Equal(decimal.NewFromInt(5)))
}

func TestApplyDirect_RechazaOUTYCantidadesInvalidas(t *testing.T) {
	f := newFixture()
	matID := f.seedMaterial(t, "10")

	casos := []movement.ApplyInput{
		{MaterialID: matID, UserID: aprobadorID, Type: entity.MovementTypeOUT, Quantity: decimal.NewFromInt(1)},
		{MaterialID: matID, UserID: aprobadorID, Type: entity.MovementTypeIN, Quantity: decimal.Zero},
		{MaterialID: matID, UserID: aprobadorID, Type: entity.MovementTypeIN, Quantity: decimal.NewFromInt(-4)},
		{MaterialID: matID, UserID: aprobadorID, Type: "TRANSFER", Quantity: decimal.NewFromInt(1)},
		{MaterialID: "", UserID: aprobadorID, Type: entity.MovementTypeIN, Quantity: decimal.NewFromInt(1)},
	}
	for _, in := range casos {
		_, err := f.apply.ApplyDirect(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.True(t, f.quantityOf(t, matID).Equal(decimal.NewFromInt(10)),
		"ninguna entrada inválida debe tocar el stock")
	assert.Empty(t, f.store.movements, "el libro debe quedar vacío")
}

func TestApplyDirect_MaterialInexistente(t *testing.T) {
	f := newFixture()
	_, err := f.apply.ApplyDirect(context.Background(), movement.ApplyInput{
		MaterialID: uuid.New().String(),
		UserID:     aprobadorID,
		Type:       entity.MovementTypeIN,
		Quantity:   decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Solicitudes de retiro (Request)
// ──────────────────────────────────────────────────────────────────────────────

func TestRequest_CreaPendingSinTocarStock(t *testing.T) {
	f := newFixture()
	matID := f.seedMaterial(t, "10")

	mov := f.pendingWithdrawal(t, matID, "4")

	assert.Equal(t, entity.MovementStatusPending, mov.Status)
	assert.Equal(t, entity.MovementTypeOUT, mov.Type)
	assert.True(t, mov.QuantityBefore.IsZero(), "before queda en cero hasta la aprobación")
	assert.True(t, mov.QuantityAfter.IsZero())
	assert.Empty(t, mov.ApprovedBy)
	assert.True(t, f.quantityOf(t, matID).Equal(decimal.NewFromInt(10)),
		"solicitar no descuenta stock")
}

func TestRequest_PermiteSolicitarMasQueElStock(t *testing.T) {
	// La cola puede recibir entradas mientras la solicitud espera; el chequeo
	// de stock ocurre al aprobar, no al solicitar.
	f := newFixture()
	matID := f.seedMaterial(t, "2")

	mov := f.pendingWithdrawal(t, matID, "50")
	assert.Equal(t, entity.MovementStatusPending, mov.Status)
}

func TestRequest_MaterialInexistente(t *testing.T) {
	f := newFixture()
	_, err := f.request.Request(context.Background(), movement.WithdrawalInput{
		MaterialID: uuid.New().String(),
		UserID:     solicitanteID,
		Quantity:   decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Decisión (aprobar / rechazar)
// ──────────────────────────────────────────────────────────────────────────────

func TestDecide_AprobarDescuentaStockYCongelaCantidades(t *testing.T) {
	f := newFixture()
	matID := f.seedMaterial(t, "10")
	mov := f.pendingWithdrawal(t, matID, "4")

	decided, err := f.decide.Decide(context.Background(), mov.ID, aprobadorID, movement.DecisionApprove)
	require.NoError(t, err)

	assert.Equal(t, entity.MovementStatusApproved, decided.Status)
	assert.Equal(t, aprobadorID, decided.ApprovedBy)
	require.NotNil(t, decided.ApprovedAt)
	assert.True(t, decided.QuantityBefore.Equal(decimal.NewFromInt(10)),
		"before se congela con la cantidad vigente al aprobar")
	assert.True(t, decided.QuantityAfter.Equal(decimal.NewFromInt(6)))
	assert.True(t, f.quantityOf(t, matID).Equal(decimal.NewFromInt(6)))
}

func TestDecide_RechazarNoTocaStock(t *testing.T) {
	f := newFixture()
	matID := f.seedMaterial(t, "10")
	mov := f.pendingWithdrawal(t, matID, "4")

	decided, err := f.decide.Decide(context.Background(), mov.ID, aprobadorID, movement.DecisionReject)
	require.NoError(t, err)

	assert.Equal(t, entity.MovementStatusRejected, decided.Status)
	assert.Equal(t, aprobadorID, decided.ApprovedBy, "el rechazo también registra quién decidió")
	assert.True(t, decided.QuantityBefore.IsZero())
	assert.True(t, decided.QuantityAfter.IsZero())
	assert.True(t, f.quantityOf(t, matID).Equal(decimal.NewFromInt(10)))
}

func TestDecide_StockInsuficienteDejaLaSolicitudPendiente(t *testing.T) {
	f := newFixture()
	matID := f.seedMaterial(t, "3")
	mov := f.pendingWithdrawal(t, matID, "4")

	_, err := f.decide.Decide(context.Background(), mov.ID, aprobadorID, movement.DecisionApprove)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr, "aprobar sin stock debe fallar con el detalle de cantidades")
	assert.True(t, stockErr.Available.Equal(decimal.NewFromInt(3)))
	assert.True(t, stockErr.Requested.Equal(decimal.NewFromInt(4)))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// La transacción se revierte completa: ni stock ni estado cambian.
	assert.True(t, f.quantityOf(t, matID).Equal(decimal.NewFromInt(3)))
	guardado := f.store.movements[mov.ID]
	assert.Equal(t, entity.MovementStatusPending, guardado.Status,
		"la solicitud sigue pendiente y puede aprobarse después de una entrada")
}

func TestDecide_PendienteSeApruebaTrasReabastecer(t *testing.T) {
	f := newFixture()
	matID := f.seedMaterial(t, "3")
	mov := f.pendingWithdrawal(t, matID, "4")

	_, err := f.decide.Decide(context.Background(), mov.ID, aprobadorID, movement.DecisionApprove)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Llega una entrada y la misma solicitud ahora sí procede.
	_, err = f.apply.ApplyDirect(context.Background(), movement.ApplyInput{
		MaterialID: matID,
		UserID:     aprobadorID,
		Type:       entity.MovementTypeIN,
		Quantity:   decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	decided, err := f.decide.Decide(context.Background(), mov.ID, aprobadorID, movement.DecisionApprove)
	require.NoError(t, err)
	assert.True(t, decided.QuantityBefore.Equal(decimal.NewFromInt(13)),
		"before debe releerse fresco, no reutilizar el valor del intento fallido")
	assert.True(t, f.quantityOf(t, matID).Equal(decimal.NewFromInt(9)))
}

func TestDecide_AutoAprobacionProhibida(t *testing.T) {
	f := newFixture()
	matID := f.seedMaterial(t, "10")
	mov := f.pendingWithdrawal(t, matID, "4")

	_, err := f.decide.Decide(context.Background(), mov.ID, solicitanteID, movement.DecisionApprove)
	assert.ErrorIs(t, err, domain.ErrForbidden,
		"el solicitante no puede aprobar su propia solicitud")

	_, err = f.decide.Decide(context.Background(), mov.ID, solicitanteID, movement.DecisionReject)
	assert.ErrorIs(t, err, domain.ErrForbidden,
		"tampoco puede rechazarla")
}

func TestDecide_DobleDecisionConflicto(t *testing.T) {
	f := newFixture()
	matID := f.seedMaterial(t, "10")
	mov := f.pendingWithdrawal(t, matID, "4")

	_, err := f.decide.Decide(context.Background(), mov.ID, aprobadorID, movement.DecisionApprove)
	require.NoError(t, err)

	_, err = f.decide.Decide(context.Background(), mov.ID, aprobadorID, movement.DecisionApprove)
	assert.ErrorIs(t, err, domain.ErrConflict, "re-aprobar debe fallar")

	_, err = f.decide.Decide(context.Background(), mov.ID, aprobadorID, movement.DecisionReject)
	assert.ErrorIs(t, err, domain.ErrConflict, "rechazar tras aprobar debe fallar")

	assert.True(t, f.quantityOf(t, matID).Equal(decimal.NewFromInt(6)),
		"el stock solo se descuenta una vez")
}

func TestDecide_EntradaInvalida(t *testing.T) {
	f := newFixture()
	matID := f.seedMaterial(t, "10")
	mov := f.pendingWithdrawal(t, matID, "4")

	_, err := f.decide.Decide(context.Background(), mov.ID, aprobadorID, "maybe")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.decide.Decide(context.Background(), uuid.New().String(), aprobadorID, movement.DecisionApprove)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia: N aprobaciones simultáneas agotan el stock exactamente
// ──────────────────────────────────────────────────────────────────────────────

func TestDecide_AprobacionesConcurrentesNoSobregiran(t *testing.T) {
	f := newFixture()
	matID := f.seedMaterial(t, "10")

	// 20 solicitudes de 1 unidad contra 10 en stock.
	const solicitudes = 20
	ids := make([]string, solicitudes)
	for i := range ids {
		ids[i] = f.pendingWithdrawal(t, matID, "1").ID
	}

	var wg sync.WaitGroup
	errs := make([]error, solicitudes)
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			_, errs[i] = f.decide.Decide(context.Background(), id, aprobadorID, movement.DecisionApprove)
		}(i, id)
	}
	wg.Wait()

	aprobadas, agotadas := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			aprobadas++
		case errors.Is(err, domain.ErrInsufficientStock):
			agotadas++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}

	assert.Equal(t, 10, aprobadas, "deben aprobarse exactamente tantas como stock había")
	assert.Equal(t, 10, agotadas, "el resto debe fallar por stock insuficiente")
	assert.True(t, f.quantityOf(t, matID).IsZero(), "el stock termina exactamente en cero")
}

// ──────────────────────────────────────────────────────────────────────────────
// Firma de retiro
// ──────────────────────────────────────────────────────────────────────────────

const firmaDataURL = "data:image/png;base64,iVBORw0KGgo="

func TestAttach_FirmaRetiroAprobado(t *testing.T) {
	f := newFixture()
	matID := f.seedMaterial(t, "10")
	mov := f.pendingWithdrawal(t, matID, "4")
	_, err := f.decide.Decide(context.Background(), mov.ID, aprobadorID, movement.DecisionApprove)
	require.NoError(t, err)

	signed, err := f.signature.Attach(context.Background(), mov.ID, solicitanteID, firmaDataURL)
	require.NoError(t, err)
	assert.True(t, signed.IsSigned())
	assert.Equal(t, firmaDataURL, f.store.movements[mov.ID].WithdrawalSignature)
}

func TestAttach_SoloElSolicitantePuedeFirmar(t *testing.T) {
	f := newFixture()
	matID := f.seedMaterial(t, "10")
	mov := f.pendingWithdrawal(t, matID, "4")
	_, err := f.decide.Decide(context.Background(), mov.ID, aprobadorID, movement.DecisionApprove)
	require.NoError(t, err)

	_, err = f.signature.Attach(context.Background(), mov.ID, aprobadorID, firmaDataURL)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAttach_SoloUnaVez(t *testing.T) {
	f := newFixture()
	matID := f.seedMaterial(t, "10")
	mov := f.pendingWithdrawal(t, matID, "4")
	_, err := f.decide.Decide(context.Background(), mov.ID, aprobadorID, movement.DecisionApprove)
	require.NoError(t, err)

	_, err = f.signature.Attach(context.Background(), mov.ID, solicitanteID, firmaDataURL)
	require.NoError(t, err)

	_, err = f.signature.Attach(context.Background(), mov.ID, solicitanteID, firmaDataURL)
	assert.ErrorIs(t, err, domain.ErrConflict, "la firma es única")
}

func TestAttach_SoloMovimientosOUTAprobados(t *testing.T) {
	f := newFixture()
	matID := f.seedMaterial(t, "10")

	// Pendiente: no se puede firmar.
	pendiente := f.pendingWithdrawal(t, matID, "4")
	_, err := f.signature.Attach(context.Background(), pendiente.ID, solicitanteID, firmaDataURL)
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Rechazado: tampoco.
	rechazado := f.pendingWithdrawal(t, matID, "4")
	_, err = f.decide.Decide(context.Background(), rechazado.ID, aprobadorID, movement.DecisionReject)
	require.NoError(t, err)
	_, err = f.signature.Attach(context.Background(), rechazado.ID, solicitanteID, firmaDataURL)
	assert.ErrorIs(t, err, domain.ErrConflict)

	// IN directo: no es un retiro, no lleva firma.
	entrada, err := f.apply.ApplyDirect(context.Background(), movement.ApplyInput{
		MaterialID: matID,
		UserID:     solicitanteID,
		Type:       entity.MovementTypeIN,
		Quantity:   decimal.NewFromInt(1),
	})
	require.NoError(t, err)
	_, err = f.signature.Attach(context.Background(), entrada.ID, solicitanteID, firmaDataURL)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAttach_FirmaDebeSerDataURLDeImagen(t *testing.T) {
	f := newFixture()
	_, err := f.signature.Attach(context.Background(), uuid.New().String(), solicitanteID, "no-es-una-imagen")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
