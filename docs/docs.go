// Package docs neontext API文档
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "健康检查",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.HealthResponse"}}
                }
            }
        },
        "/colors": {
            "get": {
                "produces": ["application/json"],
                "tags": ["create"],
                "summary": "列出支持的颜色",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/api.ColorResponse"}}}
                }
            }
        },
        "/inputs": {
            "get": {
                "produces": ["application/json"],
                "tags": ["gallery"],
                "summary": "列出可用输入视频",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/service.InputVideo"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/videos": {
            "get": {
                "description": "列出工作目录中的 mp4 文件，并从文件名解析颜色与效果，按时间倒序",
                "produces": ["application/json"],
                "tags": ["gallery"],
                "summary": "列出画廊视频",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/service.OutputVideo"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/videos/{name}/thumbnail": {
            "get": {
                "produces": ["image/jpeg"],
                "tags": ["gallery"],
                "summary": "返回视频缩略图",
                "parameters": [{"type": "string", "description": "视频文件名", "name": "name", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/videos/{name}/info": {
            "get": {
                "produces": ["application/json"],
                "tags": ["gallery"],
                "summary": "返回视频探测信息",
                "parameters": [{"type": "string", "description": "视频文件名", "name": "name", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.VideoInfo"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/create": {
            "post": {
                "description": "同步渲染，完成后返回输出文件名",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["create"],
                "summary": "创建霓虹文字视频",
                "parameters": [{"description": "合成参数", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.CreateRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.CreateResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/analyze": {
            "post": {
                "description": "抽取一帧比较上下条带的边缘密度",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["create"],
                "summary": "分析推荐的文字位置",
                "parameters": [{"description": "输入视频", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.AnalyzeRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.AnalyzeResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/jobs": {
            "get": {
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "列出合成任务记录",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/queue.Job"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/jobs/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "获取任务详情",
                "parameters": [{"type": "string", "description": "任务ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/queue.Job"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/monitor/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["monitor"],
                "summary": "获取系统统计信息",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.SystemStats"}}
                }
            }
        }
    },
    "definitions": {
        "api.AnalyzeRequest": {
            "type": "object",
            "properties": {"inputVideo": {"type": "string", "example": "beach.mp4"}}
        },
        "api.AnalyzeResponse": {
            "type": "object",
            "properties": {
                "adopt": {"type": "boolean"},
                "confidence": {"type": "number"},
                "suggestedX": {"type": "number"},
                "suggestedY": {"type": "number"},
                "zone": {"type": "string"}
            }
        },
        "api.ColorResponse": {
            "type": "object",
            "properties": {
                "bright": {"type": "string"},
                "core": {"type": "string"},
                "glow": {"type": "string"},
                "name": {"type": "string"},
                "shadow": {"type": "string"}
            }
        },
        "api.CreateRequest": {
            "type": "object",
            "properties": {
                "autoPosition": {"type": "boolean"},
                "blurBackground": {"type": "boolean"},
                "color": {"type": "string", "example": "blue"},
                "enhanced": {"type": "boolean"},
                "fontSize": {"type": "integer", "example": 0},
                "inputVideo": {"type": "string", "example": "beach.mp4"},
                "text": {"type": "string", "example": "NEWS"},
                "x": {"type": "number", "example": 0.5},
                "y": {"type": "number", "example": 0.7}
            }
        },
        "api.CreateResponse": {
            "type": "object",
            "properties": {
                "fontSize": {"type": "integer"},
                "jobId": {"type": "string"},
                "message": {"type": "string"},
                "outputVideo": {"type": "string"},
                "success": {"type": "boolean"},
                "url": {"type": "string"},
                "x": {"type": "number"},
                "y": {"type": "number"}
            }
        },
        "api.ErrorResponse": {
            "type": "object",
            "properties": {
                "details": {"type": "string"},
                "error": {"type": "string"}
            }
        },
        "api.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "timestamp": {"type": "string"}
            }
        },
        "api.JobStats": {
            "type": "object",
            "properties": {
                "completed": {"type": "integer"},
                "failed": {"type": "integer"},
                "processing": {"type": "integer"},
                "total": {"type": "integer"}
            }
        },
        "api.SystemStats": {
            "type": "object",
            "properties": {
                "cpuUsage": {"type": "number"},
                "diskTotal": {"type": "integer"},
                "diskUsage": {"type": "number"},
                "diskUsed": {"type": "integer"},
                "goroutines": {"type": "integer"},
                "jobs": {"$ref": "#/definitions/api.JobStats"},
                "memoryTotal": {"type": "integer"},
                "memoryUsage": {"type": "number"},
                "memoryUsed": {"type": "integer"},
                "timestamp": {"type": "string"}
            }
        },
        "queue.Job": {
            "type": "object",
            "properties": {
                "created": {"type": "string"},
                "error": {"type": "string"},
                "finished": {"type": "string"},
                "id": {"type": "string"},
                "output": {"type": "string"},
                "progress": {"type": "number"},
                "request": {},
                "status": {"type": "string"},
                "suggestion": {},
                "url": {"type": "string"}
            }
        },
        "service.InputVideo": {
            "type": "object",
            "properties": {
                "filename": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "service.OutputVideo": {
            "type": "object",
            "properties": {
                "color": {"type": "string"},
                "created": {"type": "string"},
                "duration": {"type": "number"},
                "effect": {"type": "string"},
                "filename": {"type": "string"},
                "name": {"type": "string"},
                "size": {"type": "number"},
                "sizeHuman": {"type": "string"},
                "url": {"type": "string"}
            }
        },
        "service.VideoInfo": {
            "type": "object",
            "properties": {
                "analyzedAt": {"type": "string"},
                "bitrate": {"type": "integer"},
                "codec": {"type": "string"},
                "duration": {"type": "number"},
                "fileName": {"type": "string"},
                "fileSize": {"type": "integer"},
                "format": {"type": "string"},
                "fps": {"type": "number"},
                "hasAudio": {"type": "boolean"},
                "height": {"type": "integer"},
                "width": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3000",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "neontext API",
	Description:      "为竖屏视频叠加霓虹光晕文字的服务接口",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
