package documentos

import (
	"context"
	"errors"
	"testing"

	"asociacion-backend/internal/models"
	"asociacion-backend/internal/storage/mocks"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func TestEliminarArchivo(t *testing.T) {
	link := "https://x.supabase.co/storage/v1/object/public/documents/12345678/ficha.pdf"
	linkRoto := "https://x.supabase.co/storage/v1/object/documents/ficha.pdf"
	linkBucketAjeno := "https://x.supabase.co/storage/v1/object/public/otrobucket/12345678/plano.pdf"

	t.Run("borra con el bucket y la ruta del enlace", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		store := mocks.NewMockClient(ctrl)
		store.EXPECT().
			Remove(gomock.Any(), "documents", "12345678/ficha.pdf").
			Return(nil)

		doc := &models.SocioDocumento{ID: 1, TipoDocumento: models.TipoFicha, LinkDocumento: &link}
		assert.NoError(t, eliminarArchivo(context.Background(), store, doc))
	})

	t.Run("enlace indescifrable bloquea sin tocar el almacenamiento", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		store := mocks.NewMockClient(ctrl)
		// sin expectativas: Remove no debe llamarse

		doc := &models.SocioDocumento{ID: 1, TipoDocumento: models.TipoFicha, LinkDocumento: &linkRoto}
		assert.Error(t, eliminarArchivo(context.Background(), store, doc))
	})

	t.Run("la falla del almacenamiento no corta la operación", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		store := mocks.NewMockClient(ctrl)
		store.EXPECT().
			Remove(gomock.Any(), "documents", "12345678/ficha.pdf").
			Return(errors.New("objeto no encontrado"))

		doc := &models.SocioDocumento{ID: 1, TipoDocumento: models.TipoFicha, LinkDocumento: &link}
		assert.NoError(t, eliminarArchivo(context.Background(), store, doc))
	})

	t.Run("bucket del enlace distinto al de la tabla: gana la tabla", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		store := mocks.NewMockClient(ctrl)
		store.EXPECT().
			Remove(gomock.Any(), "planos", "12345678/plano.pdf").
			Return(nil)

		doc := &models.SocioDocumento{ID: 2, TipoDocumento: models.TipoPlanosUbicacion, LinkDocumento: &linkBucketAjeno}
		assert.NoError(t, eliminarArchivo(context.Background(), store, doc))
	})

	t.Run("sin link no hay nada que borrar", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		store := mocks.NewMockClient(ctrl)

		doc := &models.SocioDocumento{ID: 3, TipoDocumento: models.TipoFicha}
		assert.NoError(t, eliminarArchivo(context.Background(), store, doc))
	})
}
