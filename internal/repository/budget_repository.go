package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/database"
	"github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/models"
	"github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/utils"
	"github.com/google/uuid"
)

// Nombre reservado para el budget que refleja las tasas P.IVA pendientes
const RiservaTasseName = "Riserva Tasse"

type BudgetRepository struct {
	db       *sql.DB
	accounts *AccountRepository
}

func NewBudgetRepository() *BudgetRepository {
	return &BudgetRepository{
		db:       database.DB,
		accounts: NewAccountRepository(),
	}
}

func (r *BudgetRepository) CreateBudget(budget *models.Budget) error {
	if budget.ID == "" {
		budget.ID = uuid.New().String()
	}
	if budget.Type == "" {
		budget.Type = models.BudgetTypeFixed
	}
	if budget.Type != models.BudgetTypeFixed && budget.Type != models.BudgetTypeUnlimited {
		return errors.New("tipo de budget inválido")
	}
	if budget.Type == models.BudgetTypeFixed && budget.TargetAmount <= 0 {
		return errors.New("un budget fijo necesita un monto objetivo mayor que cero")
	}
	budget.CreatedAt = time.Now()

	// Sin orden explícito, el nuevo budget va al final
	if budget.Order == 0 {
		var maxOrder sql.NullInt64
		if err := r.db.QueryRow(`SELECT MAX(priority) FROM budgets WHERE user_id = ?`, budget.UserID).Scan(&maxOrder); err != nil {
			return err
		}
		budget.Order = int(maxOrder.Int64) + 1
	}

	query := `
		INSERT INTO budgets (id, user_id, name, target_amount, type, priority, color, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.Exec(query, budget.ID, budget.UserID, budget.Name,
		budget.TargetAmount, budget.Type, budget.Order, budget.Color, budget.CreatedAt)
	return err
}

func (r *BudgetRepository) GetBudgetsByUserId(userID string) ([]models.Budget, error) {
	budgets := []models.Budget{}
	query := `
		SELECT id, user_id, name, target_amount, type, priority, color, created_at
		FROM budgets
		WHERE user_id = ?
		ORDER BY priority ASC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var budget models.Budget
		var color sql.NullString
		err := rows.Scan(
			&budget.ID,
			&budget.UserID,
			&budget.Name,
			&budget.TargetAmount,
			&budget.Type,
			&budget.Order,
			&color,
			&budget.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		budget.Color = color.String
		budgets = append(budgets, budget)
	}

	return budgets, nil
}

func (r *BudgetRepository) UpdateBudget(budget *models.Budget) error {
	query := `
		UPDATE budgets
		SET name = ?, target_amount = ?, type = ?, priority = ?, color = ?
		WHERE id = ? AND user_id = ?`

	result, err := r.db.Exec(query, budget.Name, budget.TargetAmount, budget.Type,
		budget.Order, budget.Color, budget.ID, budget.UserID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return errors.New("budget no encontrado")
	}

	return nil
}

func (r *BudgetRepository) DeleteBudget(id, userID string) error {
	result, err := r.db.Exec(`DELETE FROM budgets WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return errors.New("budget no encontrado")
	}

	return nil
}

// GetBudgetSummary calcula la asignación en cascada: los budgets fijos
// consumen la liquidez por orden de prioridad; lo que sobra se reparte en
// partes iguales entre los ilimitados. Nada de esto se persiste.
func (r *BudgetRepository) GetBudgetSummary(userID string) (*models.BudgetSummary, error) {
	budgets, err := r.GetBudgetsByUserId(userID)
	if err != nil {
		return nil, err
	}

	totalLiquidity, err := r.accounts.GetTotalLiquidity(userID)
	if err != nil {
		return nil, err
	}

	summary := &models.BudgetSummary{
		Budgets:        AllocateBudgets(budgets, totalLiquidity),
		TotalLiquidity: totalLiquidity,
	}

	remaining := totalLiquidity
	hasUnlimited := false
	for _, allocation := range summary.Budgets {
		remaining -= allocation.AllocatedAmount
		if allocation.Type == models.BudgetTypeUnlimited {
			hasUnlimited = true
		}
	}
	// Con budgets ilimitados nunca queda liquidez sin asignar
	if hasUnlimited {
		remaining = 0
	}
	if remaining < 0 {
		remaining = 0
	}
	summary.Unallocated = utils.RoundCurrency(remaining)

	return summary, nil
}

// AllocateBudgets es el cálculo puro de la cascada, separado para poder
// probarlo sin base de datos
func AllocateBudgets(budgets []models.Budget, totalLiquidity float64) []models.BudgetAllocation {
	allocations := make([]models.BudgetAllocation, 0, len(budgets))
	remaining := totalLiquidity

	var unlimitedIdx []int
	for _, budget := range budgets {
		allocation := models.BudgetAllocation{Budget: budget}

		switch budget.Type {
		case models.BudgetTypeFixed:
			allocated := budget.TargetAmount
			if allocated > remaining {
				allocated = remaining
			}
			if allocated < 0 {
				allocated = 0
			}
			allocation.AllocatedAmount = utils.RoundCurrency(allocated)
			allocation.Deficit = utils.RoundCurrency(budget.TargetAmount - allocated)
			if budget.TargetAmount > 0 {
				allocation.Progress = utils.RoundPercentage(allocated / budget.TargetAmount * 100)
			}
			allocation.IsCompleted = allocation.Deficit <= 0
			remaining -= allocated

		case models.BudgetTypeUnlimited:
			// Se resuelve en la segunda pasada, cuando conocemos el sobrante
			unlimitedIdx = append(unlimitedIdx, len(allocations))
		}

		allocations = append(allocations, allocation)
	}

	if len(unlimitedIdx) > 0 {
		if remaining < 0 {
			remaining = 0
		}
		share := utils.RoundCurrency(remaining / float64(len(unlimitedIdx)))
		for _, idx := range unlimitedIdx {
			allocations[idx].AllocatedAmount = share
			allocations[idx].Progress = 100
			allocations[idx].IsCompleted = true
		}
	}

	return allocations
}

// SyncRiservaTasse crea, actualiza o elimina el budget "Riserva Tasse" para
// que refleje el saldo de tasas P.IVA pendientes del usuario
func (r *BudgetRepository) SyncRiservaTasse(userID string, saldoTasse float64) error {
	var id string
	err := r.db.QueryRow(`SELECT id FROM budgets WHERE user_id = ? AND name = ?`,
		userID, RiservaTasseName).Scan(&id)

	if saldoTasse <= 0 {
		if err == sql.ErrNoRows {
			return nil
		}
		if err != nil {
			return err
		}
		_, err = r.db.Exec(`DELETE FROM budgets WHERE id = ?`, id)
		return err
	}

	saldoTasse = utils.RoundCurrency(saldoTasse)

	if err == sql.ErrNoRows {
		budget := &models.Budget{
			UserID:       userID,
			Name:         RiservaTasseName,
			TargetAmount: saldoTasse,
			Type:         models.BudgetTypeFixed,
			Order:        1, // las tasas van antes que cualquier otro sobre
			Color:        "#b91c1c",
		}
		return r.CreateBudget(budget)
	}
	if err != nil {
		return err
	}

	_, err = r.db.Exec(`UPDATE budgets SET target_amount = ? WHERE id = ?`, saldoTasse, id)
	return err
}
