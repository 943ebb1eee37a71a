// Package db keeps the walking graph in Postgres.
package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/C-Sakthi-Maheswari/Happy-Folks-CampUS-Sync/algo"
	"github.com/C-Sakthi-Maheswari/Happy-Folks-CampUS-Sync/config"
	"github.com/C-Sakthi-Maheswari/Happy-Folks-CampUS-Sync/model"
)

// Connect opens the database, retrying while it starts up, and migrates the schema
func Connect(cfg config.DBConfig, maxRetries int) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)
	for i := 0; i < maxRetries; i++ {
		db, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
		if err == nil {
			break
		}
		log.Printf("waiting for database (%d/%d): %v", i+1, maxRetries, err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := db.AutoMigrate(&model.Node{}, &model.Edge{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// walkingEdges restricts an edge query to edges a pedestrian may use
func walkingEdges(tx *gorm.DB) *gorm.DB {
	return tx.Where("modes IS NULL OR modes = '{}' OR modes @> ?", pq.Array([]string{model.ModeWalk}))
}

// Provider reads the walking graph from the database
type Provider struct {
	DB *gorm.DB
}

// FetchGraph loads nodes and walkable edges, then trims to the radius
func (p Provider) FetchGraph(ctx context.Context, center model.Point, radius float64) (*algo.Graph, error) {
	tx := p.DB.WithContext(ctx)

	var data model.MapData
	if err := tx.Order("id").Find(&data.Nodes).Error; err != nil {
		return nil, fmt.Errorf("db: load nodes: %w", err)
	}
	if err := tx.Scopes(walkingEdges).Order("id").Find(&data.Edges).Error; err != nil {
		return nil, fmt.Errorf("db: load edges: %w", err)
	}

	g, err := algo.FromMapData(data)
	if err != nil {
		return nil, fmt.Errorf("db: %w", err)
	}
	return g.Within(center, radius), nil
}

// IsEmpty reports whether no nodes are stored yet
func IsEmpty(ctx context.Context, db *gorm.DB) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&model.Node{}).Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}

// SaveGraph stores every node and adjacency entry of g in one transaction
func SaveGraph(ctx context.Context, db *gorm.DB, g *algo.Graph) error {
	data := ToMapData(g)
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(data.Nodes) > 0 {
			if err := tx.CreateInBatches(data.Nodes, 100).Error; err != nil {
				return fmt.Errorf("insert nodes: %w", err)
			}
		}
		if len(data.Edges) > 0 {
			if err := tx.CreateInBatches(data.Edges, 100).Error; err != nil {
				return fmt.Errorf("insert edges: %w", err)
			}
		}
		log.Printf("db: stored %d nodes, %d edges", len(data.Nodes), len(data.Edges))
		return nil
	})
}

// ToMapData flattens a graph into rows. Each adjacency entry becomes a one-way
// edge, so loading the rows back gives the same adjacency.
func ToMapData(g *algo.Graph) model.MapData {
	data := model.MapData{
		Nodes: make([]model.Node, len(g.NodeList)),
		Edges: make([]model.Edge, 0, g.EdgeCount()),
	}
	copy(data.Nodes, g.NodeList)

	for _, node := range g.NodeList {
		for _, e := range g.AdjList[node.ID] {
			edge := *e
			edge.ID = 0
			edge.OneWay = true
			if len(edge.Modes) == 0 {
				edge.Modes = pq.StringArray{model.ModeWalk}
			}
			data.Edges = append(data.Edges, edge)
		}
	}

	return data
}
