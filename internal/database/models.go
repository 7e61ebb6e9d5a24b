// Package database 定义了数据库相关的模型和结构体
// 包含用户、知识库、博客和任务等核心数据模型
package database

// 此文件保留作为数据库模型包的入口文件
// 具体的模型定义已拆分到以下文件：
// - user_models.go: 用户相关模型（User）
// - knowledge_models.go: 知识库相关模型（Topic, Entry, Resource）
// - blog_models.go: 博客相关模型（Category, Post）
// - task_models.go: 任务相关模型（Task, StudySession, List100Item）
