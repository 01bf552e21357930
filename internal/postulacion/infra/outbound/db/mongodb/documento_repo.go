package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	postDomain "github.com/ugelhub/convocatorias/internal/postulacion/domain"
)

// DocumentoRepoMongoDB implementa DocumentoRepository sobre MongoDB. La
// ficha documental es semiestructurada y no participa de los JOINs
// relacionales, por eso vive en su propia colección.
type DocumentoRepoMongoDB struct {
	coll *mongo.Collection
}

var _ postDomain.DocumentoRepository = (*DocumentoRepoMongoDB)(nil)

func NewDocumentoRepoMongoDB(ctx context.Context, client *mongo.Client, dbName string) (*DocumentoRepoMongoDB, error) {
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("could not ping mongoDB: %w", err)
	}
	return &DocumentoRepoMongoDB{
		coll: client.Database(dbName).Collection("documentos"),
	}, nil
}

// Struct de BSON local para no contaminar el dominio con tags de BSON.
type mongoDocumento struct {
	ID            uuid.UUID                  `bson:"_id"`
	PostulacionID uuid.UUID                  `bson:"postulacionId"`
	Nombre        string                     `bson:"nombre"`
	TipoDocumento string                     `bson:"tipoDocumento"`
	Estado        postDomain.EstadoDocumento `bson:"estado"`
	Observacion   string                     `bson:"observacion"`
	CreatedAt     time.Time                  `bson:"createdAt"`
	UpdatedAt     time.Time                  `bson:"updatedAt"`
}

func toMongoDocumento(d *postDomain.Documento) *mongoDocumento {
	return &mongoDocumento{
		ID: d.ID, PostulacionID: d.PostulacionID, Nombre: d.Nombre,
		TipoDocumento: d.TipoDocumento, Estado: d.Estado, Observacion: d.Observacion,
		CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
	}
}

func fromMongoDocumento(md *mongoDocumento) *postDomain.Documento {
	return &postDomain.Documento{
		ID: md.ID, PostulacionID: md.PostulacionID, Nombre: md.Nombre,
		TipoDocumento: md.TipoDocumento, Estado: md.Estado, Observacion: md.Observacion,
		CreatedAt: md.CreatedAt, UpdatedAt: md.UpdatedAt,
	}
}

func (r *DocumentoRepoMongoDB) Create(ctx context.Context, d *postDomain.Documento) error {
	if _, err := r.coll.InsertOne(ctx, toMongoDocumento(d)); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *DocumentoRepoMongoDB) GetByID(ctx context.Context, id uuid.UUID) (*postDomain.Documento, error) {
	var md mongoDocumento
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&md)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, postDomain.ErrDocumentoNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return fromMongoDocumento(&md), nil
}

func (r *DocumentoRepoMongoDB) ListByPostulacion(ctx context.Context, postulacionID uuid.UUID) ([]*postDomain.Documento, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"postulacionId": postulacionID}, opts)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer cursor.Close(ctx)

	var documentos []*postDomain.Documento
	for cursor.Next(ctx) {
		var md mongoDocumento
		if err := cursor.Decode(&md); err != nil {
			return nil, err
		}
		documentos = append(documentos, fromMongoDocumento(&md))
	}
	return documentos, cursor.Err()
}

func (r *DocumentoRepoMongoDB) Update(ctx context.Context, d *postDomain.Documento) error {
	md := toMongoDocumento(d)
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": md.ID}, bson.M{"$set": md})
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if res.MatchedCount == 0 {
		return postDomain.ErrDocumentoNotFound
	}
	return nil
}

func (r *DocumentoRepoMongoDB) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if res.DeletedCount == 0 {
		return postDomain.ErrDocumentoNotFound
	}
	return nil
}
