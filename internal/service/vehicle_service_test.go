package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warga-be-svc/internal/models"
	"warga-be-svc/internal/realtime"
)

func newVehicleFixture(repo *fakeVehicleRepo, store *fakeObjectStorage) VehicleService {
	return NewVehicleService(repo, store, &fakeNotifier{}, realtime.NewHub(), testLogger())
}

func TestVehicleRegisterUploadsBothImages(t *testing.T) {
	repo := &fakeVehicleRepo{}
	store := &fakeObjectStorage{}
	svc := newVehicleFixture(repo, store)

	vehicle, err := svc.Register(context.Background(), 5, VehicleSubmission{
		PlateNumber:      "B 1234 ABC",
		Make:             "Toyota",
		Model:            "Avanza",
		Color:            "Silver",
		Year:             2021,
		VehicleType:      models.VehicleTypeCar,
		Photo:            &UploadedFile{Name: "car.jpg", ContentType: "image/jpeg", Content: []byte("x")},
		RegistrationCard: &UploadedFile{Name: "stnk.jpg", ContentType: "image/jpeg", Content: []byte("y")},
	})

	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusPending, vehicle.Status)
	require.NotNil(t, vehicle.PhotoURL)
	require.NotNil(t, vehicle.RegistrationCardURL)
	require.Len(t, store.uploadKeys, 2)
	assert.Contains(t, store.uploadKeys[0], "users/5/vehicles/")
	assert.Contains(t, store.uploadKeys[0], "photo-")
	assert.Contains(t, store.uploadKeys[1], "registration-")
}

func TestVehicleRegisterUploadFailureAborts(t *testing.T) {
	repo := &fakeVehicleRepo{}
	store := &fakeObjectStorage{uploadErr: errors.New("storage unavailable")}
	svc := newVehicleFixture(repo, store)

	_, err := svc.Register(context.Background(), 5, VehicleSubmission{
		PlateNumber: "B 1234 ABC",
		Make:        "Toyota",
		Model:       "Avanza",
		Color:       "Silver",
		Year:        2021,
		VehicleType: models.VehicleTypeCar,
		Photo:       &UploadedFile{Name: "car.jpg", ContentType: "image/jpeg", Content: []byte("x")},
	})

	require.Error(t, err)
	assert.Empty(t, repo.created)
}

func TestVehicleUpdateRejectsApprovedRegistration(t *testing.T) {
	repo := &fakeVehicleRepo{
		byID: map[uint]*models.Vehicle{
			1: {ID: 1, UserID: 5, Status: models.RequestStatusApproved},
		},
	}
	svc := newVehicleFixture(repo, &fakeObjectStorage{})

	_, err := svc.Update(context.Background(), 5, 1, VehicleSubmission{
		PlateNumber: "B 1234 ABC",
		Make:        "Toyota",
		Model:       "Avanza",
		Color:       "Black",
		Year:        2021,
		VehicleType: models.VehicleTypeCar,
	})

	assert.ErrorIs(t, err, ErrNotEditable)
}

func TestVehicleDeleteRemovesRowThenImages(t *testing.T) {
	photoURL := "https://cdn.test/users/5/vehicles/doc/photo-1.jpg"
	cardURL := "https://cdn.test/users/5/vehicles/doc/registration-1.jpg"
	repo := &fakeVehicleRepo{
		byID: map[uint]*models.Vehicle{
			1: {ID: 1, UserID: 5, Status: models.RequestStatusPending, PhotoURL: &photoURL, RegistrationCardURL: &cardURL},
		},
	}
	// Storage failures after the row is gone are swallowed
	store := &fakeObjectStorage{deleteErr: errors.New("object locked")}
	svc := newVehicleFixture(repo, store)

	err := svc.Delete(context.Background(), 5, 1)

	require.NoError(t, err)
	assert.Equal(t, []uint{1}, repo.deleted)
	// Both deletions are still attempted even though each one fails
	assert.Equal(t, []string{photoURL, cardURL}, store.deleted)
}

func TestVehicleDeleteRowFailureKeepsImages(t *testing.T) {
	photoURL := "https://cdn.test/users/5/vehicles/doc/photo-1.jpg"
	repo := &fakeVehicleRepo{
		byID: map[uint]*models.Vehicle{
			1: {ID: 1, UserID: 5, Status: models.RequestStatusPending, PhotoURL: &photoURL},
		},
		deleteErr: errors.New("row locked"),
	}
	store := &fakeObjectStorage{}
	svc := newVehicleFixture(repo, store)

	err := svc.Delete(context.Background(), 5, 1)

	require.Error(t, err)
	assert.Empty(t, store.deleted)
}

func TestVehicleDeleteForeignVehicleHidden(t *testing.T) {
	repo := &fakeVehicleRepo{
		byID: map[uint]*models.Vehicle{
			1: {ID: 1, UserID: 9, Status: models.RequestStatusPending},
		},
	}
	svc := newVehicleFixture(repo, &fakeObjectStorage{})

	assert.ErrorIs(t, svc.Delete(context.Background(), 5, 1), ErrNotFound)
}
