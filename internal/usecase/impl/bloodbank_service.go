package impl

import (
	"context"
	"log/slog"
	"sort"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"go.uber.org/fx"

	deliverycontext "lifeline/internal/delivery/context"
	"lifeline/internal/domain/entity"
	domainerrors "lifeline/internal/domain/errors"
	"lifeline/internal/domain/repository"
	"lifeline/internal/domain/service"
	"lifeline/internal/errors"
	"lifeline/internal/usecase"
)

// bloodBankService implements the BloodBankUsecase interface.
type bloodBankService struct {
	txManager  repository.TransactionManager
	bankRepo   repository.BloodBankRepository
	geocoder   service.Geocoder
	mapService service.MapService
	logger     *slog.Logger
}

// BloodBankServiceParams holds dependencies for BloodBankService, injected by Fx.
type BloodBankServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	BankRepo   repository.BloodBankRepository
	Geocoder   service.Geocoder   `optional:"true"`
	MapService service.MapService `optional:"true"`
	Logger     *slog.Logger
}

// NewBloodBankService is the constructor for bloodBankService.
func NewBloodBankService(params BloodBankServiceParams) usecase.BloodBankUsecase {
	return &bloodBankService{
		txManager:  params.TxManager,
		bankRepo:   params.BankRepo,
		geocoder:   params.Geocoder,
		mapService: params.MapService,
		logger:     params.Logger,
	}
}

func (srv *bloodBankService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateBank stores a new bank. Missing coordinates are filled in by
// geocoding the address; a no-match answer leaves them empty rather than
// failing the create.
func (srv *bloodBankService) CreateBank(ctx context.Context, input usecase.BankInput) (*usecase.BankView, error) {
	bank := &entity.BloodBank{
		Name:      input.Name,
		Address:   input.Address,
		City:      input.City,
		Phone:     input.Phone,
		Email:     input.Email,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
	}

	if !bank.HasCoordinates() {
		srv.fillCoordinates(ctx, bank)
	}

	if err := srv.bankRepo.Create(ctx, bank); err != nil {
		srv.log(ctx).Warn("Bank creation failed", slog.String("name", input.Name), slog.Any("error", err))

		return nil, domainerrors.WrapMessage(err, "failed to create blood bank")
	}

	srv.log(ctx).Info("Blood bank created", slog.Any("bankID", bank.ID), slog.String("city", bank.City))

	return srv.view(bank), nil
}

func (srv *bloodBankService) GetBank(ctx context.Context, id uuid.UUID) (*usecase.BankView, error) {
	bank, err := srv.loadBank(ctx, id)
	if err != nil {
		return nil, err
	}

	return srv.view(bank), nil
}

func (srv *bloodBankService) UpdateBank(ctx context.Context, id uuid.UUID, input usecase.BankInput) (*usecase.BankView, error) {
	var updated *entity.BloodBank
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		bankRepo := repoFactory.BloodBankRepo()

		bank, findErr := bankRepo.FindByID(ctx, id)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrBloodBankNotFound) {
				return domainerrors.ErrNotFound.WithCause(findErr)
			}

			return errors.Wrap(findErr, "failed to load bank for update")
		}

		addressChanged := bank.Address != input.Address || bank.City != input.City

		bank.Name = input.Name
		bank.Address = input.Address
		bank.City = input.City
		bank.Phone = input.Phone
		bank.Email = input.Email
		if input.Latitude != nil {
			bank.Latitude = input.Latitude
		}
		if input.Longitude != nil {
			bank.Longitude = input.Longitude
		}

		// Stored coordinates go stale when the address moves and the caller
		// did not supply new ones.
		if addressChanged && input.Latitude == nil && input.Longitude == nil {
			bank.Latitude = nil
			bank.Longitude = nil
			srv.fillCoordinates(ctx, bank)
		}

		if updateErr := bankRepo.Update(ctx, bank); updateErr != nil {
			return errors.Wrap(updateErr, "failed to persist bank update")
		}

		updated = bank

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Bank update failed", slog.Any("bankID", id), slog.Any("error", err))

		return nil, domainerrors.WrapMessage(err, "failed to update blood bank")
	}

	return srv.view(updated), nil
}

func (srv *bloodBankService) DeleteBank(ctx context.Context, id uuid.UUID) error {
	if err := srv.bankRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrBloodBankNotFound) {
			return domainerrors.ErrNotFound.WithCause(err)
		}

		return domainerrors.WrapMessage(err, "failed to delete blood bank")
	}

	srv.log(ctx).Info("Blood bank deleted", slog.Any("bankID", id))

	return nil
}

func (srv *bloodBankService) ListBanks(ctx context.Context, filter repository.BloodBankListFilter) ([]*usecase.BankView, error) {
	banks, err := srv.bankRepo.List(ctx, filter)
	if err != nil {
		return nil, domainerrors.WrapMessage(err, "failed to list blood banks")
	}

	views := make([]*usecase.BankView, 0, len(banks))
	for _, bank := range banks {
		views = append(views, srv.view(bank))
	}

	return views, nil
}

// NearbyBanks returns geocoded banks within the radius, closest first.
// Distance is computed in the usecase so the query stays a plain index scan.
func (srv *bloodBankService) NearbyBanks(ctx context.Context, input usecase.NearbyBanksInput) ([]*usecase.BankView, error) {
	if input.RadiusKm <= 0 {
		return nil, domainerrors.ErrInvalidInput.WithMessage("radius must be positive")
	}

	banks, err := srv.bankRepo.ListWithCoordinates(ctx)
	if err != nil {
		return nil, domainerrors.WrapMessage(err, "failed to load banks for nearby search")
	}

	origin := orb.Point{input.Longitude, input.Latitude}
	views := make([]*usecase.BankView, 0, len(banks))
	for _, bank := range banks {
		if input.Group != nil && bank.UnitsOf(*input.Group) <= 0 {
			continue
		}

		distanceKm := geo.Distance(origin, orb.Point{*bank.Longitude, *bank.Latitude}) / 1000
		if distanceKm > input.RadiusKm {
			continue
		}

		view := srv.view(bank)
		d := distanceKm
		view.DistanceKm = &d
		views = append(views, view)
	}

	sort.Slice(views, func(i, j int) bool {
		return *views[i].DistanceKm < *views[j].DistanceKm
	})

	return views, nil
}

// AdjustInventory applies an admin stock correction and returns the bank with
// the fresh inventory.
func (srv *bloodBankService) AdjustInventory(ctx context.Context, bankID uuid.UUID, group entity.BloodGroup, delta int) (*usecase.BankView, error) {
	if !group.IsValid() {
		return nil, domainerrors.ErrInvalidInput.WithMessage("unknown blood group")
	}

	var bank *entity.BloodBank
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		bankRepo := repoFactory.BloodBankRepo()

		if adjustErr := bankRepo.AdjustInventory(ctx, bankID, group, delta); adjustErr != nil {
			if errors.Is(adjustErr, repository.ErrBloodBankNotFound) {
				return domainerrors.ErrNotFound.WithCause(adjustErr)
			}

			return errors.Wrap(adjustErr, "failed to adjust inventory")
		}

		var findErr error
		bank, findErr = bankRepo.FindByID(ctx, bankID)
		if findErr != nil {
			return errors.Wrap(findErr, "failed to reload bank after inventory adjustment")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Inventory adjustment failed",
			slog.Any("bankID", bankID),
			slog.Any("group", group),
			slog.Int("delta", delta),
			slog.Any("error", err),
		)

		return nil, domainerrors.WrapMessage(err, "failed to adjust bank inventory")
	}

	srv.log(ctx).Info("Inventory adjusted",
		slog.Any("bankID", bankID),
		slog.Any("group", group),
		slog.Int("delta", delta),
	)

	return srv.view(bank), nil
}

func (srv *bloodBankService) loadBank(ctx context.Context, id uuid.UUID) (*entity.BloodBank, error) {
	bank, err := srv.bankRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBloodBankNotFound) {
			return nil, domainerrors.ErrNotFound.WithCause(err)
		}

		return nil, domainerrors.WrapMessage(err, "failed to load blood bank")
	}

	return bank, nil
}

// fillCoordinates geocodes the address in place. A miss or a disabled
// geocoder leaves the bank without coordinates.
func (srv *bloodBankService) fillCoordinates(ctx context.Context, bank *entity.BloodBank) {
	if srv.geocoder == nil || bank.Address == "" {
		return
	}

	address := bank.Address
	if bank.City != "" {
		address += ", " + bank.City
	}

	coords, err := srv.geocoder.Geocode(ctx, address)
	if err != nil {
		if !errors.Is(err, service.ErrNoGeocodingResult) {
			srv.log(ctx).Warn("Geocoding failed", slog.String("address", address), slog.Any("error", err))
		}

		return
	}

	bank.Latitude = &coords.Latitude
	bank.Longitude = &coords.Longitude
}

func (srv *bloodBankService) view(bank *entity.BloodBank) *usecase.BankView {
	view := &usecase.BankView{Bank: bank}
	if srv.mapService == nil {
		return view
	}

	if bank.HasCoordinates() {
		view.MapEmbedURL = srv.mapService.EmbedURLForCoordinates(*bank.Latitude, *bank.Longitude)
	} else if bank.Address != "" {
		view.MapEmbedURL = srv.mapService.EmbedURLForPlace(bank.Address + ", " + bank.City)
	}

	return view
}
