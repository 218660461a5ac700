package cli

import (
	"github.com/spf13/cobra"

	cliadapter "github.com/example/armazem/internal/adapters/cli"
	"github.com/example/armazem/internal/app"
	"github.com/example/armazem/internal/models"
	"github.com/example/armazem/internal/ports/primary"
	"github.com/example/armazem/internal/wire"
)

var equipmentCommand = resourceCommand[models.Equipment]{
	Use:     "equipamentos",
	Aliases: []string{"equipment", "eq"},
	Short:   "Manage equipment",
	Sheet:   "Equipamentos",
	Empty:   "Nenhum equipamento encontrado",
	Def:     app.EquipmentDef,
	Columns: cliadapter.EquipmentColumns,
	Page:    func() *app.Page[models.Equipment] { return wire.EquipmentPage().Page },
}

// EquipamentosCmd returns the equipment command.
func EquipamentosCmd() *cobra.Command {
	cmd := equipmentCommand.Command()
	cmd.AddCommand(maintenanceCmd())
	return cmd
}

func maintenanceCmd() *cobra.Command {
	var (
		off    bool
		avaria string
	)

	cmd := &cobra.Command{
		Use:   "manutencao <id>",
		Short: "Mark an item as under maintenance, or back in service with --off",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			if err := requireSession(ctx); err != nil {
				return report(cmd, err, "")
			}

			p := wire.EquipmentPage()
			if err := p.Load(ctx); err != nil {
				return report(cmd, err, app.MsgLoadFailed)
			}

			msg, err := p.SetMaintenance(ctx, primary.MaintenanceRequest{
				ID:              args[0],
				EmManutencao:    !off,
				DescricaoAvaria: avaria,
			})
			return reportSaved(cmd, msg, err, app.MsgSaveFailed)
		},
	}
	cmd.Flags().BoolVar(&off, "off", false, "Put the item back in service")
	cmd.Flags().StringVar(&avaria, "avaria", "", "Fault description")
	return cmd
}

// ViaturasCmd returns the vehicles command.
func ViaturasCmd() *cobra.Command {
	return resourceCommand[models.Vehicle]{
		Use:     "viaturas",
		Aliases: []string{"vehicles"},
		Short:   "Manage vehicles",
		Sheet:   "Viaturas",
		Empty:   "Nenhuma viatura encontrada",
		Def:     app.VehicleDef,
		Columns: cliadapter.VehicleColumns,
	}.Command()
}

// MateriaisCmd returns the materials command.
func MateriaisCmd() *cobra.Command {
	return resourceCommand[models.Material]{
		Use:     "materiais",
		Aliases: []string{"materials"},
		Short:   "Manage stock materials",
		Sheet:   "Materiais",
		Empty:   "Nenhum material encontrado",
		Def:     app.MaterialDef,
		Columns: func(cliadapter.Labeler) []cliadapter.Column[models.Material] { return cliadapter.MaterialColumns() },
	}.Command()
}

// ObrasCmd returns the construction sites command.
func ObrasCmd() *cobra.Command {
	return resourceCommand[models.Site]{
		Use:     "obras",
		Aliases: []string{"sites"},
		Short:   "Manage construction sites",
		Sheet:   "Obras",
		Empty:   "Nenhuma obra encontrada",
		Def:     app.SiteDef,
		Columns: func(cliadapter.Labeler) []cliadapter.Column[models.Site] { return cliadapter.SiteColumns() },
	}.Command()
}

// LocaisCmd returns the storage locations command.
func LocaisCmd() *cobra.Command {
	return resourceCommand[models.Location]{
		Use:     "locais",
		Aliases: []string{"locations"},
		Short:   "Manage storage locations",
		Sheet:   "Locais",
		Empty:   "Nenhum local encontrado",
		Def:     app.LocationDef,
		Columns: func(cliadapter.Labeler) []cliadapter.Column[models.Location] { return cliadapter.LocationColumns() },
	}.Command()
}

// MovimentosCmd returns the movements command. Movements are append-only.
func MovimentosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "movimentos",
		Aliases: []string{"movements", "mov"},
		Short:   "List and record movements",
	}

	today := wire.Today
	cmd.AddCommand(resourceCommand[models.AssetMovement]{
		Use:     "ativos",
		Aliases: []string{"assets"},
		Short:   "Equipment and vehicle check-in/check-out",
		Sheet:   "Movimentos",
		Empty:   "Nenhum movimento registado",
		Def:     func() app.ResourceDef[models.AssetMovement] { return app.AssetMovementDef(today) },
		Columns: cliadapter.AssetMovementColumns,
	}.Command())
	cmd.AddCommand(resourceCommand[models.StockMovement]{
		Use:     "stock",
		Short:   "Material stock in/out",
		Sheet:   "Stock",
		Empty:   "Nenhum movimento de stock registado",
		Def:     func() app.ResourceDef[models.StockMovement] { return app.StockMovementDef(today) },
		Columns: cliadapter.StockMovementColumns,
	}.Command())
	cmd.AddCommand(resourceCommand[models.VehicleKmMovement]{
		Use:     "viaturas",
		Aliases: []string{"km"},
		Short:   "Vehicle kilometre log",
		Sheet:   "Quilometros",
		Empty:   "Nenhum registo de quilómetros",
		Def:     func() app.ResourceDef[models.VehicleKmMovement] { return app.VehicleKmDef(today) },
		Columns: cliadapter.VehicleKmColumns,
	}.Command())
	return cmd
}
