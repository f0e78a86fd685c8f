package analytics

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"wellfit-garage/client"
	"wellfit-garage/database"
	"wellfit-garage/helpers"
	"wellfit-garage/models"
)

// Tracker collects facility detail views in the analytics cache (influxDB)
// and periodically replicates aged totals into the database (Mongo)
type Tracker struct {
	influxClient influxdb2.Client
	VisitorAPI   database.InfluxAPI
	collections  map[string]*mongo.Collection
	GetUserName  func(ID string) (string, error)
	Requests     *client.Registry
}

type Visit struct {
	VisitTS  time.Time `json:"visitTS"`
	ObjectID string
	UserID   string `json:"userID"`
	UserName string `json:"userName"`
}

// SetConnections initializes the instance
func (t *Tracker) SetConnections(influxClient *influxdb2.Client, mongoCollections map[string]*mongo.Collection) {
	t.influxClient = *influxClient
	t.collections = mongoCollections
}

// SaveVisitor stores event data in the analytics cache
func (t *Tracker) SaveVisitor(domain string, facilityID string, userID string) {

	if os.Getenv("USE_ANALYTICS") != "YES" {
		return
	}

	// include object type (domain) in key name,
	// so this information can be "wrapped" in aggregation queries

	p := influxdb2.NewPoint(
		"visit",
		map[string]string{"facilityId": domain + "_" + facilityID},
		map[string]interface{}{"userId": userID},
		time.Now())

	// ToDo: log Error
	_ = t.VisitorAPI.WriteAPI.WritePoint(context.Background(), p)
}

// GetVisits counts the number of visits of a facility
// the value is "live" - meaning it's read from the analytics cache (influxDB)
// which is set to a maximum period (TTL) of 30 days.
// older totals live in the facility document (see Replicate)
func (t *Tracker) GetVisits(domain string, facilityID string, startDT time.Time) (int64, error) {

	// with gathering disabled there simply are no recorded visits
	if os.Getenv("USE_ANALYTICS") != "YES" {
		return 0, nil
	}

	flux := `from(bucket: "%s")
		|> range(start: %s)
		|> filter(fn: (r) => r["_measurement"] == "visit" and r["facilityId"] == "%s")
		|> count()
		|> yield(name: "count")`

	id := domain + "_" + facilityID
	flux = fmt.Sprintf(
		flux,
		os.Getenv("ANALYTICS_VISITORS_BUCKET"),
		startDT.Format(time.RFC3339),
		id)

	result, err := t.VisitorAPI.QueryAPI.Query(context.Background(), flux)
	if err != nil {
		return 0, helpers.WrapError(err, helpers.FuncName())
	}

	// single record expected
	var res interface{}
	for result.Next() {
		res = result.Record().Value()
	}

	var cnt int64 = 0
	if res != nil {
		cnt = res.(int64)
	}

	return cnt, nil
}

// ListVisitors returns the last visitors of a facility
// (only the last visit per user)
func (t *Tracker) ListVisitors(facilityID string, startDT time.Time, userID string) ([]Visit, error) {

	if os.Getenv("USE_ANALYTICS") != "YES" {
		return nil, nil
	}

	flux := `import "strings"
		from(bucket: "%s")
		|> range(start: %s)
		|> filter(fn: (r) => r["_measurement"] == "visit" and strings.containsStr(substr: "%s", v: r.facilityId))
		|> group(columns: ["_value"], mode:"by")
		|> max(column: "_time")
		|> sort(columns: ["_time"], desc: true)
		|> limit(n:10, offset: 0)`

	flux = fmt.Sprintf(
		flux,
		os.Getenv("ANALYTICS_VISITORS_BUCKET"),
		startDT.Format(time.RFC3339), // 2021-04-01T00:00:00Z
		facilityID)

	result, err := t.VisitorAPI.QueryAPI.Query(context.Background(), flux)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	var visit Visit
	var visits []Visit
	for result.Next() {
		visit.VisitTS = result.Record().Time()
		visit.ObjectID = facilityID
		if result.Record().Value() == nil {
			visit.UserID = ""
			visit.UserName = ""
		} else {
			visit.UserID = result.Record().Value().(string)
			visit.UserName, _ = t.GetUserName(visit.UserID)
		}

		visits = append(visits, visit)
	}

	// the flux query is sorted, the slice arrives unordered though
	sort.Slice(visits, func(i, j int) bool {
		return visits[j].VisitTS.Before(visits[i].VisitTS)
	})

	return visits, nil
}

// Replicate moves aged visit counts from the cache (influxDB) into the
// database (Mongo); usually run by a GO-routine in a ticker
func (t *Tracker) Replicate() {

	if os.Getenv("USE_ANALYTICS") != "YES" {
		return
	}

	fmt.Println("Replicating...")

	ctx := context.Background()
	start := time.Date(2021, 1, 1, 0, 0, 0, 0, time.Now().UTC().Location()) // just start somewhere as the minimum date
	stop := time.Now().AddDate(0, -1, 0)                                    // move everything older than one month

	// 1. get counts from influxDB
	flux := `from(bucket: "%s")
	|> range(start: %s, stop: %s) // use pre-calculated stop because delete-api needs time
	|> filter(fn: (r) => r["_measurement"] == "visit")
	|> count()
	|> yield(name: "count")`

	flux = fmt.Sprintf(
		flux,
		os.Getenv("ANALYTICS_VISITORS_BUCKET"),
		start.Format(time.RFC3339),
		stop.Format(time.RFC3339))

	result, err := t.VisitorAPI.QueryAPI.Query(ctx, flux)
	if err != nil {
		fmt.Println(helpers.WrapError(err, helpers.FuncName()))
		return
	}

	// 2. save counts to MongoDB (bulk)
	// create a write model for each collection
	opModels := make(map[string][]mongo.WriteModel)

	var strs []string // used to "extract" object type from key
	for result.Next() {
		// create a document and a write model for each record
		strs = strings.SplitN(result.Record().ValueByKey("facilityId").(string), "_", 2)

		operation := bson.D{
			{Key: "$inc", Value: bson.D{
				{Key: "visits", Value: result.Record().Value()}, // value of the projection function (count)
			}},
		}

		opModel := mongo.NewUpdateOneModel()

		// map the object types (domains) from influxDB to Mongo collections
		switch strs[0] {
		case "facility":
			// facilities are keyed by their (string) catalog ID
			opModel.SetFilter(bson.D{{Key: "_id", Value: strs[1]}}).SetUpdate(operation)
			opModels["facilities"] = append(opModels["facilities"], opModel)
		case "user":
			opModel.SetFilter(bson.D{{Key: "_id", Value: models.ObjectID(strs[1])}}).SetUpdate(operation)
			opModels["users"] = append(opModels["users"], opModel)
		default:
			// ToDo: Log
			fmt.Println("ERROR: repl not correctly implemented")
		}
	}

	var i int = 0
	for _, v := range opModels {
		i += len(v)
	}

	// abort if no data to process
	if i == 0 {
		fmt.Printf("%v: %v facility visit(s) replicated.\n", time.Now().Format(time.RFC3339), 0)
		return
	}

	opts := options.BulkWrite().SetOrdered(false)

	var cnt int64 = 0 // total replicated visits

	// process each collection's write models (= update operations)
	for k, v := range opModels {
		if v != nil {
			res, err := t.collections[k].BulkWrite(ctx, v, opts)
			if err != nil {
				fmt.Println(helpers.WrapError(err, helpers.FuncName()))
				continue
			}
			cnt += res.MatchedCount
		}
	}

	fmt.Printf("%v: %v facility visit(s) replicated.\n", time.Now().Format(time.RFC3339), cnt)

	// 3. delete transferred data from influxDB
	err = t.VisitorAPI.DeleteAPI.DeleteWithName(ctx, os.Getenv("ANALYTICS_ORG"), os.Getenv("ANALYTICS_VISITORS_BUCKET"), start, stop, "")
	if err != nil {
		// replicated data stays in the cache and would be counted again
		fmt.Println("ERROR: could not delete replicated data in influxDB")
		return
	}
}
