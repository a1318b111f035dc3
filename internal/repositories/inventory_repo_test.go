package repositories

import (
	"context"
	"testing"
	"time"

	"shopadmin/internal/common"
	"shopadmin/internal/models"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type InventoryRepoTestSuite struct {
	suite.Suite
	mock        pgxmock.PgxPoolIface
	repo        InventoryRepository
	productID   uuid.UUID
	inventoryID uuid.UUID
	context     context.Context
}

func (suite *InventoryRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewInventoryRepo(mock)
	suite.productID = uuid.New()
	suite.inventoryID = uuid.New()
	suite.context = context.Background()
}

func (suite *InventoryRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestInventoryRepoTestSuite(t *testing.T) {
	suite.Run(t, new(InventoryRepoTestSuite))
}

func quantityUpdate(quantity int) *models.InventoryUpdate {
	return &models.InventoryUpdate{Quantity: &quantity}
}

func (suite *InventoryRepoTestSuite) inventoryRow(quantity, threshold int, lastRestock *time.Time) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows([]string{"id", "product_id", "quantity", "low_stock_threshold", "last_restock_date", "created_at", "updated_at"}).
		AddRow(suite.inventoryID, suite.productID, quantity, threshold, lastRestock, now, now)
}

func (suite *InventoryRepoTestSuite) TestGetByProduct_Success() {
	suite.mock.ExpectQuery(`SELECT id, product_id, quantity, low_stock_threshold, last_restock_date, created_at, updated_at FROM inventory WHERE product_id = \$1`).
		WithArgs(suite.productID).
		WillReturnRows(suite.inventoryRow(25, 10, nil))

	inventory, err := suite.repo.GetByProduct(suite.context, suite.productID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.inventoryID, inventory.ID)
	assert.Equal(suite.T(), 25, inventory.Quantity)
	assert.Nil(suite.T(), inventory.LastRestockDate)
}

func (suite *InventoryRepoTestSuite) TestGetByProduct_NotFound() {
	suite.mock.ExpectQuery(`SELECT .* FROM inventory WHERE product_id = \$1`).
		WithArgs(suite.productID).
		WillReturnError(pgx.ErrNoRows)

	inventory, err := suite.repo.GetByProduct(suite.context, suite.productID)
	assert.Nil(suite.T(), inventory)
	assert.True(suite.T(), common.IsNotFound(err))
}

func (suite *InventoryRepoTestSuite) TestAdjust_IncreaseMovesRestockDateAndAppendsHistory() {
	newQuantity := 40
	reason := "restock"

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`SELECT .* FROM inventory WHERE product_id = \$1 FOR UPDATE`).
		WithArgs(suite.productID).
		WillReturnRows(suite.inventoryRow(10, 10, nil))
	suite.mock.ExpectExec(`UPDATE inventory\s+SET quantity = \$2, low_stock_threshold = \$3, last_restock_date = \$4, updated_at = NOW\(\)\s+WHERE id = \$1`).
		WithArgs(suite.inventoryID, newQuantity, 10, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectExec(`INSERT INTO inventory_history \(id, inventory_id, previous_quantity, new_quantity, change_reason, change_date\)`).
		WithArgs(pgxmock.AnyArg(), suite.inventoryID, 10, newQuantity, &reason).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectCommit()

	inventory, err := suite.repo.Adjust(suite.context, suite.productID,
		quantityUpdate(newQuantity), &reason)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), newQuantity, inventory.Quantity)
	assert.NotNil(suite.T(), inventory.LastRestockDate)
}

func (suite *InventoryRepoTestSuite) TestAdjust_DecreaseKeepsRestockDate() {
	newQuantity := 4
	reason := "damaged goods"

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`SELECT .* FROM inventory WHERE product_id = \$1 FOR UPDATE`).
		WithArgs(suite.productID).
		WillReturnRows(suite.inventoryRow(10, 10, nil))
	suite.mock.ExpectExec(`UPDATE inventory`).
		WithArgs(suite.inventoryID, newQuantity, 10, (*time.Time)(nil)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectExec(`INSERT INTO inventory_history`).
		WithArgs(pgxmock.AnyArg(), suite.inventoryID, 10, newQuantity, &reason).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectCommit()

	inventory, err := suite.repo.Adjust(suite.context, suite.productID,
		quantityUpdate(newQuantity), &reason)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), newQuantity, inventory.Quantity)
	assert.Nil(suite.T(), inventory.LastRestockDate)
}

func (suite *InventoryRepoTestSuite) TestAdjust_ThresholdOnlySkipsHistory() {
	threshold := 3

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`SELECT .* FROM inventory WHERE product_id = \$1 FOR UPDATE`).
		WithArgs(suite.productID).
		WillReturnRows(suite.inventoryRow(10, 10, nil))
	suite.mock.ExpectExec(`UPDATE inventory`).
		WithArgs(suite.inventoryID, 10, threshold, (*time.Time)(nil)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectCommit()

	update := &models.InventoryUpdate{LowStockThreshold: &threshold}
	inventory, err := suite.repo.Adjust(suite.context, suite.productID, update, nil)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 10, inventory.Quantity)
	assert.Equal(suite.T(), threshold, inventory.LowStockThreshold)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *InventoryRepoTestSuite) TestAdjust_SameQuantitySkipsHistory() {
	quantity := 10

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`SELECT .* FROM inventory WHERE product_id = \$1 FOR UPDATE`).
		WithArgs(suite.productID).
		WillReturnRows(suite.inventoryRow(10, 10, nil))
	suite.mock.ExpectExec(`UPDATE inventory`).
		WithArgs(suite.inventoryID, quantity, 10, (*time.Time)(nil)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectCommit()

	inventory, err := suite.repo.Adjust(suite.context, suite.productID,
		quantityUpdate(quantity), nil)
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), inventory.LastRestockDate)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *InventoryRepoTestSuite) TestAdjust_NotFound() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`SELECT .* FROM inventory WHERE product_id = \$1 FOR UPDATE`).
		WithArgs(suite.productID).
		WillReturnError(pgx.ErrNoRows)
	suite.mock.ExpectRollback()

	quantity := 5
	inventory, err := suite.repo.Adjust(suite.context, suite.productID,
		quantityUpdate(quantity), nil)
	assert.Nil(suite.T(), inventory)
	assert.True(suite.T(), common.IsNotFound(err))
}

func (suite *InventoryRepoTestSuite) TestListLowStock() {
	now := time.Now()
	rows := pgxmock.NewRows([]string{"id", "product_id", "quantity", "low_stock_threshold", "last_restock_date", "created_at", "updated_at"}).
		AddRow(uuid.New(), uuid.New(), 0, 10, nil, now, now).
		AddRow(uuid.New(), uuid.New(), 3, 5, nil, now, now)

	suite.mock.ExpectQuery(`SELECT .* FROM inventory WHERE quantity <= low_stock_threshold ORDER BY quantity`).
		WillReturnRows(rows)

	inventories, err := suite.repo.ListLowStock(suite.context)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), inventories, 2)
	assert.Equal(suite.T(), 0, inventories[0].Quantity)
}

func (suite *InventoryRepoTestSuite) TestHistory_OrderedNewestFirst() {
	reason := "restock"
	rows := pgxmock.NewRows([]string{"id", "inventory_id", "previous_quantity", "new_quantity", "change_reason", "change_date"}).
		AddRow(uuid.New(), suite.inventoryID, 10, 40, &reason, time.Now()).
		AddRow(uuid.New(), suite.inventoryID, 0, 10, nil, time.Now().Add(-time.Hour))

	suite.mock.ExpectQuery(`SELECT id, inventory_id, previous_quantity, new_quantity, change_reason, change_date\s+FROM inventory_history\s+WHERE inventory_id = \$1\s+ORDER BY change_date DESC`).
		WithArgs(suite.inventoryID).
		WillReturnRows(rows)

	history, err := suite.repo.History(suite.context, suite.inventoryID)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), history, 2)
	assert.Equal(suite.T(), 40, history[0].NewQuantity)
	assert.Nil(suite.T(), history[1].ChangeReason)
}
