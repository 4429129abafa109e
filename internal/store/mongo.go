package store

import (
	"context"
	"regexp"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/micromarket/backend/internal/domain"
)

// Mongo implements Store over a mongo database. Documents are keyed by the
// application-generated "id" string field rather than the native ObjectID,
// preserving the wire format clients already depend on.
type Mongo struct {
	db *mongo.Database
}

var _ Store = (*Mongo)(nil)

func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{db: db}
}

func (m *Mongo) coll(name string) *mongo.Collection {
	return m.db.Collection(name)
}

// EnsureIndexes creates the lookup and uniqueness indexes. Failures are
// returned but callers treat them as non-fatal: the application enforces
// uniqueness with pre-checks either way.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)
	specs := map[string][]mongo.IndexModel{
		domain.CollUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "id", Value: 1}}},
		},
		domain.CollSuppliers: {
			{Keys: bson.D{{Key: "id", Value: 1}}},
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
		},
		domain.CollProducts: {
			{Keys: bson.D{{Key: "id", Value: 1}}},
			{Keys: bson.D{{Key: "supplier_id", Value: 1}}},
			{Keys: bson.D{{Key: "category", Value: 1}}},
		},
		domain.CollReviews: {
			{Keys: bson.D{{Key: "supplier_id", Value: 1}}},
			{Keys: bson.D{{Key: "vendor_id", Value: 1}, {Key: "supplier_id", Value: 1}}},
		},
		domain.CollNotifications: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		domain.CollCarts: {
			{Keys: bson.D{{Key: "vendor_id", Value: 1}}, Options: unique},
		},
		domain.CollOrders: {
			{Keys: bson.D{{Key: "vendor_id", Value: 1}}},
			{Keys: bson.D{{Key: "supplier_id", Value: 1}}},
		},
	}
	for name, models := range specs {
		if _, err := m.coll(name).Indexes().CreateMany(ctx, models); err != nil {
			return errors.Wrapf(err, "create indexes for %s", name)
		}
	}
	return nil
}

// --- users ---

func (m *Mongo) CreateUser(ctx context.Context, user *domain.User) error {
	_, err := m.coll(domain.CollUsers).InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return errors.Wrap(err, "insert user")
}

func (m *Mongo) UserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.findUser(ctx, bson.M{"email": email})
}

func (m *Mongo) UserByID(ctx context.Context, id string) (*domain.User, error) {
	return m.findUser(ctx, bson.M{"id": id})
}

func (m *Mongo) findUser(ctx context.Context, query bson.M) (*domain.User, error) {
	var user domain.User
	err := m.coll(domain.CollUsers).FindOne(ctx, query).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "find user")
	}
	return &user, nil
}

// --- suppliers ---

func (m *Mongo) CreateSupplier(ctx context.Context, supplier *domain.Supplier) error {
	_, err := m.coll(domain.CollSuppliers).InsertOne(ctx, supplier)
	return errors.Wrap(err, "insert supplier")
}

func (m *Mongo) SupplierByID(ctx context.Context, id string) (*domain.Supplier, error) {
	return m.findSupplier(ctx, bson.M{"id": id})
}

func (m *Mongo) SupplierByUserID(ctx context.Context, userID string) (*domain.Supplier, error) {
	return m.findSupplier(ctx, bson.M{"user_id": userID})
}

func (m *Mongo) findSupplier(ctx context.Context, query bson.M) (*domain.Supplier, error) {
	var supplier domain.Supplier
	err := m.coll(domain.CollSuppliers).FindOne(ctx, query).Decode(&supplier)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "find supplier")
	}
	return &supplier, nil
}

func (m *Mongo) ListSuppliers(ctx context.Context, filter SupplierFilter) ([]domain.Supplier, error) {
	query := bson.M{}
	if filter.IDs != nil {
		query["id"] = bson.M{"$in": filter.IDs}
	}
	if filter.MinRating > 0 {
		query["rating"] = bson.M{"$gte": filter.MinRating}
	}
	if filter.Location != "" {
		query["location"] = primitive.Regex{Pattern: regexp.QuoteMeta(filter.Location), Options: "i"}
	}
	cursor, err := m.coll(domain.CollSuppliers).Find(ctx, query, options.Find().SetLimit(ListCap))
	if err != nil {
		return nil, errors.Wrap(err, "list suppliers")
	}
	suppliers := []domain.Supplier{}
	if err := cursor.All(ctx, &suppliers); err != nil {
		return nil, errors.Wrap(err, "decode suppliers")
	}
	return suppliers, nil
}

func (m *Mongo) SetSupplierRating(ctx context.Context, id string, rating float64, totalReviews int) error {
	_, err := m.coll(domain.CollSuppliers).UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"rating": rating, "total_reviews": totalReviews}})
	return errors.Wrap(err, "update supplier rating")
}

func (m *Mongo) CountSuppliers(ctx context.Context) (int64, error) {
	n, err := m.coll(domain.CollSuppliers).CountDocuments(ctx, bson.M{})
	return n, errors.Wrap(err, "count suppliers")
}

func (m *Mongo) InsertSuppliers(ctx context.Context, suppliers []domain.Supplier) error {
	docs := make([]interface{}, len(suppliers))
	for i := range suppliers {
		docs[i] = suppliers[i]
	}
	_, err := m.coll(domain.CollSuppliers).InsertMany(ctx, docs)
	return errors.Wrap(err, "insert suppliers")
}

// --- products ---

func (m *Mongo) CreateProduct(ctx context.Context, product *domain.Product) error {
	_, err := m.coll(domain.CollProducts).InsertOne(ctx, product)
	return errors.Wrap(err, "insert product")
}

func (m *Mongo) ProductByID(ctx context.Context, id string) (*domain.Product, error) {
	return m.findProduct(ctx, bson.M{"id": id})
}

func (m *Mongo) ProductOwnedBy(ctx context.Context, id, supplierID string) (*domain.Product, error) {
	return m.findProduct(ctx, bson.M{"id": id, "supplier_id": supplierID})
}

func (m *Mongo) findProduct(ctx context.Context, query bson.M) (*domain.Product, error) {
	var product domain.Product
	err := m.coll(domain.CollProducts).FindOne(ctx, query).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "find product")
	}
	return &product, nil
}

func (m *Mongo) ListProducts(ctx context.Context, supplierID string, filter ProductFilter) ([]domain.Product, error) {
	query := bson.M{}
	if supplierID != "" {
		query["supplier_id"] = supplierID
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	price := bson.M{}
	if filter.MinPrice > 0 {
		price["$gte"] = filter.MinPrice
	}
	if filter.MaxPrice > 0 {
		price["$lte"] = filter.MaxPrice
	}
	if len(price) > 0 {
		query["price_per_unit"] = price
	}
	if filter.MinQuantity > 0 {
		query["quantity_available"] = bson.M{"$gte": filter.MinQuantity}
	}
	cursor, err := m.coll(domain.CollProducts).Find(ctx, query, options.Find().SetLimit(ListCap))
	if err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	products := []domain.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, errors.Wrap(err, "decode products")
	}
	return products, nil
}

func (m *Mongo) SupplierIDsByCategory(ctx context.Context, category string) ([]string, error) {
	values, err := m.coll(domain.CollProducts).Distinct(ctx, "supplier_id", bson.M{"category": category})
	if err != nil {
		return nil, errors.Wrap(err, "distinct supplier ids")
	}
	ids := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			ids = append(ids, s)
		}
	}
	return ids, nil
}

func (m *Mongo) UpdateProduct(ctx context.Context, product *domain.Product) error {
	res, err := m.coll(domain.CollProducts).ReplaceOne(ctx, bson.M{"id": product.ID}, product)
	if err != nil {
		return errors.Wrap(err, "replace product")
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *Mongo) DeleteProduct(ctx context.Context, id, supplierID string) error {
	res, err := m.coll(domain.CollProducts).DeleteOne(ctx, bson.M{"id": id, "supplier_id": supplierID})
	if err != nil {
		return errors.Wrap(err, "delete product")
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *Mongo) CountProducts(ctx context.Context, supplierID string) (int64, error) {
	n, err := m.coll(domain.CollProducts).CountDocuments(ctx, bson.M{"supplier_id": supplierID})
	return n, errors.Wrap(err, "count products")
}

func (m *Mongo) InsertProducts(ctx context.Context, products []domain.Product) error {
	docs := make([]interface{}, len(products))
	for i := range products {
		docs[i] = products[i]
	}
	_, err := m.coll(domain.CollProducts).InsertMany(ctx, docs)
	return errors.Wrap(err, "insert products")
}

// --- reviews ---

func (m *Mongo) CreateReview(ctx context.Context, review *domain.Review) error {
	_, err := m.coll(domain.CollReviews).InsertOne(ctx, review)
	return errors.Wrap(err, "insert review")
}

func (m *Mongo) HasReview(ctx context.Context, vendorID, supplierID string) (bool, error) {
	n, err := m.coll(domain.CollReviews).CountDocuments(ctx,
		bson.M{"vendor_id": vendorID, "supplier_id": supplierID},
		options.Count().SetLimit(1))
	if err != nil {
		return false, errors.Wrap(err, "count reviews")
	}
	return n > 0, nil
}

func (m *Mongo) ListReviews(ctx context.Context, supplierID string) ([]domain.Review, error) {
	cursor, err := m.coll(domain.CollReviews).Find(ctx,
		bson.M{"supplier_id": supplierID}, options.Find().SetLimit(ListCap))
	if err != nil {
		return nil, errors.Wrap(err, "list reviews")
	}
	reviews := []domain.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, errors.Wrap(err, "decode reviews")
	}
	return reviews, nil
}

// --- notifications ---

func (m *Mongo) CreateNotification(ctx context.Context, notification *domain.Notification) error {
	_, err := m.coll(domain.CollNotifications).InsertOne(ctx, notification)
	return errors.Wrap(err, "insert notification")
}

func (m *Mongo) ListNotifications(ctx context.Context, userID string) ([]domain.Notification, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(NotificationCap)
	cursor, err := m.coll(domain.CollNotifications).Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "list notifications")
	}
	notifications := []domain.Notification{}
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, errors.Wrap(err, "decode notifications")
	}
	return notifications, nil
}

func (m *Mongo) MarkNotificationRead(ctx context.Context, id, userID string) error {
	res, err := m.coll(domain.CollNotifications).UpdateOne(ctx,
		bson.M{"id": id, "user_id": userID},
		bson.M{"$set": bson.M{"is_read": true}})
	if err != nil {
		return errors.Wrap(err, "mark notification read")
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// --- carts ---

func (m *Mongo) CartByVendor(ctx context.Context, vendorID string) (*domain.Cart, error) {
	var cart domain.Cart
	err := m.coll(domain.CollCarts).FindOne(ctx, bson.M{"vendor_id": vendorID}).Decode(&cart)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "find cart")
	}
	return &cart, nil
}

func (m *Mongo) InsertCart(ctx context.Context, cart *domain.Cart) error {
	_, err := m.coll(domain.CollCarts).InsertOne(ctx, cart)
	return errors.Wrap(err, "insert cart")
}

func (m *Mongo) ReplaceCart(ctx context.Context, cart *domain.Cart) error {
	res, err := m.coll(domain.CollCarts).ReplaceOne(ctx, bson.M{"vendor_id": cart.VendorID}, cart)
	if err != nil {
		return errors.Wrap(err, "replace cart")
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// --- orders ---

func (m *Mongo) InsertOrder(ctx context.Context, order *domain.Order) error {
	_, err := m.coll(domain.CollOrders).InsertOne(ctx, order)
	return errors.Wrap(err, "insert order")
}

func (m *Mongo) ListOrdersByVendor(ctx context.Context, vendorID string) ([]domain.Order, error) {
	return m.listOrders(ctx, bson.M{"vendor_id": vendorID})
}

func (m *Mongo) ListOrdersBySupplier(ctx context.Context, supplierID string) ([]domain.Order, error) {
	return m.listOrders(ctx, bson.M{"supplier_id": supplierID})
}

func (m *Mongo) listOrders(ctx context.Context, query bson.M) ([]domain.Order, error) {
	cursor, err := m.coll(domain.CollOrders).Find(ctx, query, options.Find().SetLimit(ListCap))
	if err != nil {
		return nil, errors.Wrap(err, "list orders")
	}
	orders := []domain.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, errors.Wrap(err, "decode orders")
	}
	return orders, nil
}

func (m *Mongo) CountOrdersBySupplier(ctx context.Context, supplierID string) (int64, error) {
	n, err := m.coll(domain.CollOrders).CountDocuments(ctx, bson.M{"supplier_id": supplierID})
	return n, errors.Wrap(err, "count orders")
}
